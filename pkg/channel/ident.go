package channel

import (
	"os"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

// ProbeID retrieves the stable ID identifying this probe instance,
// used in topic names and client IDs.
func ProbeID() string {
	id, err := machineid.ID()
	if err != nil {
		glog.Warningf("machine id unavailable: %v", err)
		if host, herr := os.Hostname(); herr == nil {
			return host
		}
		return "probe"
	}
	return id
}
