package cmd

import (
	"os"

	"mwdl/internal/buildinfo"
	"mwdl/internal/config"
	"mwdl/internal/domain"
	"mwdl/internal/download"
	"mwdl/internal/faillog"
	"mwdl/internal/files"
	"mwdl/internal/logger"
	"mwdl/internal/parse"
	"mwdl/internal/progress"
	"mwdl/internal/ui"

	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Download every manga listed in the URLs file",
	Run: func(cmd *cobra.Command, _ []string) {
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

		urlsPath := cfg.Config.URLsFile
		if cmd.Flags().Changed("file") {
			urlsPath = urlsFile
		}

		raw, err := files.ReadURLFile(urlsPath)
		if err != nil {
			log.Fatal().Err(err).Msgf("could not read URLs file %q", urlsPath)
		}

		urls, err := parse.URLList(raw)
		if err != nil {
			log.Fatal().Err(err).Msgf("nothing to download from %q", urlsPath)
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

		var summary domain.Summary
		run := func() error {
			var runErr error
			summary, runErr = svc.Batch(ctx, urls, parse.ChapterRange{})
			return runErr
		}

		if quiet {
			err = run()
		} else {
			err = ui.Run("mwdl batch", state, run)
		}

		if err != nil {
			log.Fatal().Err(err).Msg("batch failed")
		}

		log.Info().Msgf("run %s finished %d manga, %d chapters: %d complete, %d partial, %d failed, %d skipped",
			summary.RunID, summary.Manga, summary.Chapters, summary.Complete, summary.Partial, summary.Failed, summary.Skipped)

		// only a run without gaps clears the list
		if summary.Partial == 0 && summary.Failed == 0 {
			if err := files.ClearURLFile(urlsPath); err != nil {
				log.Error().Err(err).Msgf("could not clear URLs file %q", urlsPath)
			}
		}
	},
}
