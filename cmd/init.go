package cmd

var (
	configPath     string
	documentFormat string
	quiet          bool

	startChapter int
	endChapter   int

	urlsFile string
)

func initRootFlags() {
	rootCmd.PersistentFlags().StringVarP(
		&configPath,
		"config",
		"c",
		"",
		"specifies the path to your config file",
	)
}

func initDownloadFlags() {
	downloadCmd.Flags().IntVarP(
		&startChapter,
		"start",
		"s",
		0,
		"first chapter to download (1-based, inclusive)",
	)
	downloadCmd.Flags().IntVarP(
		&endChapter,
		"end",
		"e",
		0,
		"last chapter to download (1-based, inclusive)",
	)
	downloadCmd.Flags().StringVarP(
		&documentFormat,
		"format",
		"f",
		"",
		"bundle every finished chapter into a document: pdf, cbz or epub",
	)
	downloadCmd.Flags().BoolVarP(
		&quiet,
		"quiet",
		"q",
		false,
		"disable the live progress view",
	)
}

func initBatchFlags() {
	batchCmd.Flags().StringVarP(
		&urlsFile,
		"file",
		"F",
		"",
		"file holding one manga URL per line",
	)
	batchCmd.Flags().StringVarP(
		&documentFormat,
		"format",
		"f",
		"",
		"bundle every finished chapter into a document: pdf, cbz or epub",
	)
	batchCmd.Flags().BoolVarP(
		&quiet,
		"quiet",
		"q",
		false,
		"disable the live progress view",
	)
}
