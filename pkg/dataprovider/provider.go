package dataprovider

import (
	"context"
	"errors"

	"github.com/mosayeb-a/tehran-metro-sub000/pkg/metro"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/network"
)

var ErrUnknownFormat = errors.New("unknown data source format")
var ErrNoTimetable = errors.New("no timetable for line")

// StationProvider loads the full station graph once at startup
type StationProvider interface {
	LoadNetwork(ctx context.Context) (*network.Network, error)
}

// TimetableProvider loads every schedule of one line
type TimetableProvider interface {
	LineTimetable(ctx context.Context, line int) (*metro.LineTimetable, error)
}

// Provider supplies both stations and timetables from the same backend
type Provider interface {
	StationProvider
	TimetableProvider
}

type Format string

const (
	FormatFile    Format = "file"
	FormatMongoDB Format = "mongodb"
)
