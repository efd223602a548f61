package classifier

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wlds/wlds-go/internal/classifierd"
	"github.com/wlds/wlds-go/internal/conf"
)

// Command creates the command that runs the built-in demo classifier.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classifier",
		Short: "Run the built-in demo classification server",
		Long:  "Start the demo classification server that answers analyze requests with fixed per-mode results.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return classifierd.New().Start(settings.Classifier.Listen)
		},
	}

	if err := setupFlags(cmd, settings); err != nil {
		fmt.Printf("error setting up flags: %v\n", err)
		os.Exit(1)
	}

	return cmd
}

// setupFlags configures flags specific to the classifier command.
func setupFlags(cmd *cobra.Command, settings *conf.Settings) error {
	cmd.Flags().StringVar(&settings.Classifier.Listen, "listen", viper.GetString("classifier.listen"), "Listen address and port of the demo classifier")

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("error binding flags: %v", err)
	}

	return nil
}
