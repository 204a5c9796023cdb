package config

// this holds the resolved configuration values from CLI
//
//nolint:lll // readablity
var (
	LogLevel  string // sets the log level (zap log level values)
	LogFormat string // text vs json
	LogConfig string // path to a file with zapfilter rules

	ScenarioFile string // path to a YAML scenario file
	OutputFile   string // path for the produced output file

	Runners             int     // number of runners
	AvgPaceMinPerKm     float64 // average pace in minutes per km
	StdDevPaceMinPerKm  float64 // standard deviation of pace
	TimeLimitHours      float64 // race time limit in hours
	WaveGroups          int     // number of wave start groups
	WaveIntervalMinutes float64 // start interval between waves in minutes
	Seed                uint64  // random seed; 0 picks a time-based seed

	SingleTracks  []string // explicit sections, each "startKm,endKm,capacity"
	PercentTracks []string // percentage sections, each "startPct,endPct,capacity"
	RandomTrack   string   // random sections, "totalPct,capacity"
	Cutoffs       []string // cutoffs, each "distanceKm,timeHours"

	Stations      string  // comma separated aid station distances in km
	HistogramBins int     // bin count for passage time histograms
	SnapshotTimes string  // comma separated snapshot times in hours
	DensityBinKm  float64 // km per density bin in distribution snapshots

	FrameIntervalMin int // minutes between animation frames
	MaxRunners       int // display cap for animated runners
)
