// conf/defaults.go default values for settings
package conf

import (
	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "WLDS-Go")
	viper.SetDefault("main.theme", ThemeLight)

	viper.SetDefault("panel.listen", "127.0.0.1:8080")
	viper.SetDefault("panel.historylimit", 10)

	viper.SetDefault("classifier.url", "http://127.0.0.1:5000")
	viper.SetDefault("classifier.listen", "127.0.0.1:5000")

	viper.SetDefault("capture.audio.source", "sysdefault")
	viper.SetDefault("capture.camera.snapshoturl", "http://127.0.0.1:8554/snapshot")
}
