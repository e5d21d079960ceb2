// Package config wires viper configuration into the application's
// collaborators: the store, the remote client, and the controller.
package config

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"catatan/internal/tui/theme"
	"catatan/pkg/api"
	"catatan/pkg/controller"
	"catatan/pkg/models"
	"catatan/pkg/storage"
)

var cfgFile string

// InitConfig loads config from $HOME/.config/catatan/config.yaml and the
// CATATAN_ environment.
func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "catatan")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("CATATAN")

	// Set defaults
	viper.SetDefault("data_dir", filepath.Join(os.Getenv("HOME"), ".local", "share", "catatan"))
	viper.SetDefault("base_url", "") // empty means offline mode
	viper.SetDefault("theme", "")    // empty means follow the terminal

	// A missing config file is fine; defaults and flags cover everything.
	_ = viper.ReadInConfig()
}

// App bundles the collaborators every command works with.
type App struct {
	Store  *storage.Store
	Client *api.Client // nil in offline mode
	Ctrl   *controller.Controller
	Log    *logrus.Logger
}

// NewApp builds the app from the loaded configuration. A configured
// base_url puts the controller in API mode; otherwise everything is local.
func NewApp(confirm controller.ConfirmFunc) (*App, error) {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)
	if viper.GetBool("verbose") {
		log.SetLevel(logrus.DebugLevel)
	}

	store, err := storage.Open(viper.GetString("data_dir"), log)
	if err != nil {
		return nil, err
	}

	defaultTheme := theme.System()
	if t := viper.GetString("theme"); t != "" {
		defaultTheme = models.ParseTheme(t)
	}

	opts := []controller.Option{
		controller.WithLogger(log),
		controller.WithDefaultTheme(defaultTheme),
		controller.WithConfirm(confirm),
	}

	var client *api.Client
	if baseURL := viper.GetString("base_url"); baseURL != "" {
		client = api.New(baseURL, store, log)
		opts = append(opts, controller.WithRemote(client))
	}

	return &App{
		Store:  store,
		Client: client,
		Ctrl:   controller.New(store, opts...),
		Log:    log,
	}, nil
}

// AddGlobalFlags registers the persistent flags shared by every command.
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/catatan/config.yaml)")
	cmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
	_ = viper.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))
	cmd.PersistentFlags().String("base-url", "", "notes API base URL (empty runs offline)")
	_ = viper.BindPFlag("base_url", cmd.PersistentFlags().Lookup("base-url"))
	cmd.PersistentFlags().String("data-dir", "", "data directory override")
	_ = viper.BindPFlag("data_dir", cmd.PersistentFlags().Lookup("data-dir"))
}

// IndexPath returns the search index location inside the data dir.
func IndexPath() string {
	return filepath.Join(viper.GetString("data_dir"), "index.db")
}
