package panel

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wlds/wlds-go/internal/conf"
	"github.com/wlds/wlds-go/internal/panel"
)

// Command creates the command that runs the control panel daemon.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "panel",
		Short: "Run the control panel daemon",
		Long:  "Start the control panel daemon serving the device API for the browser front-end.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return panel.Run(settings)
		},
	}

	if err := setupFlags(cmd, settings); err != nil {
		fmt.Printf("error setting up flags: %v\n", err)
		os.Exit(1)
	}

	return cmd
}

// setupFlags configures flags specific to the panel command.
func setupFlags(cmd *cobra.Command, settings *conf.Settings) error {
	cmd.Flags().StringVar(&settings.Panel.Listen, "listen", viper.GetString("panel.listen"), "Listen address and port of the panel API")
	cmd.Flags().IntVar(&settings.Panel.HistoryLimit, "historylimit", viper.GetInt("panel.historylimit"), "Maximum retained detection history entries")
	cmd.Flags().StringVar(&settings.Classifier.URL, "classifier", viper.GetString("classifier.url"), "Base URL of the classification server")
	cmd.Flags().StringVar(&settings.Capture.Audio.Source, "source", viper.GetString("capture.audio.source"), "Audio capture source (\"sysdefault\", \"USB Audio\", etc.)")
	cmd.Flags().StringVar(&settings.Capture.Camera.SnapshotURL, "snapshot", viper.GetString("capture.camera.snapshoturl"), "Snapshot URL of the device camera daemon")

	// Bind flags to the viper settings
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("error binding flags: %v", err)
	}

	return nil
}
