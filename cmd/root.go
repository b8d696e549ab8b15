package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/JCSmillie/AlbrightReunion/internal/config"
)

var cfgFile string
var appConfig config.Config

var rootCmd = &cobra.Command{
	Use:   "albright-reunion",
	Short: "Builds the Albright family reunion photo gallery",
	Long: `albright-reunion scans the reunion site for year folders with a
gallery of photos, writes a highlights page and a download page for each year,
and regenerates the home page linking every year that has highlights.

Run it with no arguments to rebuild the site in the configured root.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initializeConfig(cmd); err != nil {
			return err
		}
		setupLogger(appConfig.LogLevel)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuildProcess(appConfig)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

func initializeConfig(_ *cobra.Command) error {
	v := viper.New()
	setDefaults(v, config.Defaults())

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("GALLERY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		if cfgFile != "" {
			return fmt.Errorf("config file %s not found: %w", cfgFile, err)
		}
	}

	cfg := config.Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	appConfig = cfg
	return nil
}

func setDefaults(v *viper.Viper, d config.Config) {
	v.SetDefault("rootDir", d.RootDir)
	v.SetDefault("siteTitle", d.SiteTitle)
	v.SetDefault("siteHeading", d.SiteHeading)
	v.SetDefault("familyName", d.FamilyName)
	v.SetDefault("yearSuffix", d.YearSuffix)
	v.SetDefault("galleryDir", d.GalleryDir)
	v.SetDefault("highlightPrefix", d.HighlightPrefix)
	v.SetDefault("featuredImage", d.FeaturedImage)
	v.SetDefault("imageExtensions", d.ImageExtensions)
	v.SetDefault("introFile", d.IntroFile)
	v.SetDefault("introMarkdownFile", d.IntroMarkdownFile)
	v.SetDefault("attentionImage", d.AttentionImage)
	v.SetDefault("documentExtension", d.DocumentExtension)
	v.SetDefault("styleSheet", d.StyleSheet)
	v.SetDefault("lightboxCSS", d.LightboxCSS)
	v.SetDefault("lightboxJS", d.LightboxJS)
	v.SetDefault("highlightsPage", d.HighlightsPage)
	v.SetDefault("indexPage", d.IndexPage)
	v.SetDefault("writeGalleryIndex", d.WriteGalleryIndex)
	v.SetDefault("logLevel", d.LogLevel)
}
