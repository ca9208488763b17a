package dataprovider

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/mosayeb-a/tehran-metro-sub000/pkg/config"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/metro"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testStations = `
- id: "A"
  name: {en: "A", fa: "الف"}
  lines: [{line: 1, position: 1}]
  relations: ["B"]
- id: "B"
  name: {en: "B", fa: "ب"}
  lines: [{line: 1, position: 2}]
  relations: ["A"]
  disabled: true
  amenities: {wheelchair: true}
`

const testLines = `
- number: 1
  main:
    first: {en: "A", fa: "الف"}
    second: {en: "B", fa: "ب"}
`

const testSchedule = `station_id,line,branch,destination_en,destination_fa,type,times
A,1,false,B,ب,all-day,07:10 06:50
A,1,false,B,ب,friday,09:00
A,2,false,B,ب,all-day,08:00
`

func testProvider(files map[string]string) *FileProvider {
	mapFS := fstest.MapFS{}
	for name, contents := range files {
		mapFS[name] = &fstest.MapFile{Data: []byte(contents)}
	}

	return &FileProvider{
		FS:              mapFS,
		StationsPath:    "stations.yaml",
		LinesPath:       "lines.yaml",
		SchedulePattern: "line-%d.csv",
	}
}

func TestFileProviderLoadNetwork(t *testing.T) {
	provider := testProvider(map[string]string{
		"stations.yaml": testStations,
		"lines.yaml":    testLines,
	})

	net, err := provider.LoadNetwork(context.Background())
	require.NoError(t, err)

	b, exists := net.Station("B")
	require.True(t, exists)
	assert.True(t, b.Disabled)
	assert.True(t, b.Amenities.Wheelchair)
	assert.Equal(t, "ب", b.Name.Fa)
	assert.Equal(t, []string{"A"}, net.Adjacent("B"))

	endpoints, exists := net.Endpoints(1, false)
	require.True(t, exists)
	assert.Equal(t, "B", endpoints.Second.En)
}

func TestFileProviderMissingFiles(t *testing.T) {
	provider := testProvider(map[string]string{"stations.yaml": testStations})

	_, err := provider.LoadNetwork(context.Background())
	assert.Error(t, err)

	_, err = provider.LineTimetable(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNoTimetable)
}

func TestFileProviderTimetable(t *testing.T) {
	provider := testProvider(map[string]string{"line-1.csv": testSchedule})

	timetable, err := provider.LineTimetable(context.Background(), 1)
	require.NoError(t, err)

	groups := timetable.Lookup("A", false)
	require.Len(t, groups, 1)
	assert.Equal(t, "B", groups[0].Destination.En)

	allDay := groups[0].Times[metro.ScheduleTypeAllDay]
	require.Len(t, allDay, 2)
	assert.Equal(t, "06:50", metro.FormatClock(allDay[0]))
	assert.Equal(t, "07:10", metro.FormatClock(allDay[1]))
	assert.Len(t, groups[0].Times[metro.ScheduleTypeFriday], 1)
}

func TestFileProviderRejectsBadClock(t *testing.T) {
	provider := testProvider(map[string]string{"line-1.csv": "station_id,line,branch,destination_en,destination_fa,type,times\nA,1,false,B,ب,all-day,7am\n"})

	_, err := provider.LineTimetable(context.Background(), 1)
	assert.Error(t, err)
}

func TestBundledTimetables(t *testing.T) {
	provider := Bundled()

	for _, line := range []int{1, 4, 5} {
		timetable, err := provider.LineTimetable(context.Background(), line)
		require.NoError(t, err, "line %d", line)
		assert.NotEmpty(t, timetable.Stations)
	}

	timetable, err := provider.LineTimetable(context.Background(), 1)
	require.NoError(t, err)
	assert.NotEmpty(t, timetable.Lookup("Vavan", true))
	assert.NotEmpty(t, timetable.Lookup("Kahrizak", false))

	_, err = provider.LineTimetable(context.Background(), 9)
	assert.ErrorIs(t, err, ErrNoTimetable)
}

func TestScheduleDocumentConversion(t *testing.T) {
	timetable := metro.GroupScheduleEntries(5, []metro.ScheduleEntry{
		{StationID: "Golshahr", Line: 5, Branch: true, Destination: metro.BilingualName{En: "Shahid Sepahbod Soleimani"}, Type: metro.ScheduleTypeAllDay, Time: 0.3},
		{StationID: "Golshahr", Line: 5, Branch: true, Destination: metro.BilingualName{En: "Shahid Sepahbod Soleimani"}, Type: metro.ScheduleTypeAllDay, Time: 0.2},
		{StationID: "Karaj", Line: 5, Destination: metro.BilingualName{En: "Golshahr"}, Type: metro.ScheduleTypeFriday, Time: 0.4},
	})

	documents := DocumentsFromTimetable(timetable)
	assert.Len(t, documents, 2)

	rebuilt := TimetableFromDocuments(5, documents)
	assert.Equal(t, timetable.Stations, rebuilt.Stations)
}

func TestOpen(t *testing.T) {
	appConfig := config.Default()

	provider, closer, err := Open(context.Background(), appConfig)
	require.NoError(t, err)
	defer closer()
	assert.IsType(t, &FileProvider{}, provider)

	appConfig.Data.Source = "sqlite"
	_, _, err = Open(context.Background(), appConfig)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
