package config

const (
	defaultCatalogDB            = "~/bin/Youtube-Playlist-Manager/ytdata/metadata.db"
	defaultInventoryFile        = "~/storage/shared/Documents/MyAlbums.txt"
	defaultLogDir               = "~/.local/share/albumcheck/logs"
	defaultFuzzyThreshold       = 85
	defaultStabilizationTimeout = 10
	defaultPollIntervalMS       = 100
	defaultTrigger              = TriggerCommand
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// defaultTriggerCommand asks Tasker to run the task that lists album folders.
var defaultTriggerCommand = []string{
	"am", "broadcast",
	"-a", "net.dinglisch.android.tasker.ACTION_TASK",
	"--es", "task_name", "ListAlbumFolders",
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CatalogDB:     defaultCatalogDB,
			InventoryFile: defaultInventoryFile,
			LogDir:        defaultLogDir,
		},
		Matching: Matching{
			FuzzyThreshold: defaultFuzzyThreshold,
		},
		Inventory: Inventory{
			StabilizationTimeout: defaultStabilizationTimeout,
			PollIntervalMS:       defaultPollIntervalMS,
			Trigger:              defaultTrigger,
			TriggerCommand:       append([]string(nil), defaultTriggerCommand...),
			RemoveStale:          true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
