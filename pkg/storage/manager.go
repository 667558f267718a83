package storage

import (
	"fmt"

	"github.com/ashrith-07/campus-bites-sub000/config"
	"github.com/ashrith-07/campus-bites-sub000/pkg/logger"
)

// Connect boots the configured disks and returns the default one.
// The local disk is always available; S3 only when S3_BUCKET is set.
func Connect() Disk {
	disks := map[string]Disk{
		"local": newLocalDisk(),
	}

	if config.Get("S3_BUCKET", "") != "" {
		d, err := newS3Disk()
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			disks["s3"] = d
		}
	}

	name := config.Get("STORAGE_DISK", "local")
	d, ok := disks[name]
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}
