package dataprovider

import (
	"github.com/mosayeb-a/tehran-metro-sub000/data"
)

// Bundled reads the network and timetables shipped in the data package
func Bundled() *FileProvider {
	return &FileProvider{
		FS:              data.FS,
		StationsPath:    data.StationsFile,
		LinesPath:       data.LinesFile,
		SchedulePattern: data.SchedulePattern,
	}
}
