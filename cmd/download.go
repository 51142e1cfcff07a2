package cmd

import (
	"os"

	"mwdl/internal/buildinfo"
	"mwdl/internal/config"
	"mwdl/internal/domain"
	"mwdl/internal/download"
	"mwdl/internal/faillog"
	"mwdl/internal/logger"
	"mwdl/internal/parse"
	"mwdl/internal/progress"
	"mwdl/internal/source"
	"mwdl/internal/ui"

	"github.com/spf13/cobra"
)

var downloadCmd = &cobra.Command{
	Use:   "download <manga-url>",
	Short: "Download the chapters of one manga",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		// read config
		cfg := config.New(configPath, buildinfo.Version)

		// init new logger
		log := logger.New(cfg.Config)

		if err := cfg.UpdateConfig(); err != nil {
			log.Error().Err(err).Msgf("error updating config")
		}

		// init dynamic config
		cfg.DynamicReload(log)

		if cmd.Flags().Changed("format") {
			cfg.Config.DocumentFormat = documentFormat
		}

		if !domain.ValidDocumentFormat(cfg.Config.DocumentFormat) {
			log.Fatal().Msgf("unknown document format: %s", cfg.Config.DocumentFormat)
		}

		// range errors surface before any network activity
		rng := parse.ChapterRange{Start: startChapter, End: endChapter}
		if err := parse.ValidateBounds(rng); err != nil {
			log.Fatal().Err(err).Msg("invalid chapter range")
		}

		mangaURL := args[0]

		_, title, err := source.ExtractMangaInfo(mangaURL)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid manga url")
		}

		if err := os.MkdirAll(cfg.Config.DownloadLocation, os.ModePerm); err != nil {
			log.Fatal().Err(err).Msg("invalid download location")
		}

		flog, err := faillog.New(cfg.Config.ErrorLog)
		if err != nil {
			log.Fatal().Err(err).Msg("could not open error log")
		}
		defer flog.Close()

		state := progress.NewState()
		svc := download.NewService(cfg.Config, log, state, flog)

		var result download.MangaResult
		run := func() error {
			var runErr error
			result, runErr = svc.Manga(ctx, mangaURL, rng)
			state.Finish()
			return runErr
		}

		if quiet {
			err = run()
		} else {
			err = ui.Run(title, state, run)
		}

		if err != nil {
			log.Fatal().Err(err).Msgf("failed to download %q", title)
		}

		log.Info().Msgf("run %s finished %q: %d complete, %d partial, %d failed, %d skipped",
			svc.RunID(), result.Title, result.Complete, result.Partial, result.Failed, result.Skipped)
	},
}
