package installer

// State is a step of a provisioning run
type State int

const (
	StateInit State = iota
	StateFetchingCatalog
	StateAwaitingDownload
	StateDownloading
	StateExtracting
	StateConfiguring
	StateVerifying
	StateDone
	StateFailed
)

var stateNames = [...]string{
	StateInit:             "init",
	StateFetchingCatalog:  "fetching_catalog",
	StateAwaitingDownload: "awaiting_download",
	StateDownloading:      "downloading",
	StateExtracting:       "extracting",
	StateConfiguring:      "configuring",
	StateVerifying:        "verifying",
	StateDone:             "done",
	StateFailed:           "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}
