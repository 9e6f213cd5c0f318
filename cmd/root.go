package cmd

import (
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pathway-sim/pathway-sim/queue"
	"github.com/pathway-sim/pathway-sim/queue/replicate"
)

var (
	// CLI flags shared by the run and sweep subcommands
	logLevel   string // Log verbosity level
	dataPath   string // Clustered patient-flow CSV
	paramsPath string // Tuned props/num_servers parameter file

	// CLI flags for a single scenario run
	numServers      int       // Number of identical servers in the pool
	maxTime         float64   // Simulation horizon in days
	seed            int64     // Seed for all random draws
	sigma           float64   // Arrival-rate scaling factor
	props           []float64 // Per-class service-rate scaling factors
	utilisationsOut string    // Utilisation table CSV destination
	systemTimesOut  string    // System-time table CSV destination

	// CLI flags for the sweep subcommand
	sweepConfigPath string // Sweep grid YAML
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "pathway-sim",
	Short: "Discrete-event simulator for patient-flow queueing scenarios",
}

// runCmd simulates one scenario from CLI flags and prints its summary
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single queueing scenario",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		byClass, err := LoadClusteredRecords(dataPath)
		if err != nil {
			logrus.Fatalf("Loading clustered records: %v", err)
		}
		resolveTunedParams(byClass)

		classes, err := queue.EstimateAll(byClass, props, sigma)
		if err != nil {
			logrus.Fatalf("Estimating class parameters: %v", err)
		}

		cfg := queue.ScenarioConfig{
			NumServers: numServers,
			MaxTime:    maxTime,
			Seed:       seed,
			Classes:    classes,
		}

		logrus.Infof("Starting simulation with %d servers, horizon=%.1f days, sigma=%.3f, seed=%d",
			numServers, maxTime, sigma, seed)
		startTime := time.Now()

		sim, err := queue.NewSimulator(cfg)
		if err != nil {
			logrus.Fatalf("Building simulator: %v", err)
		}
		sim.Run()

		res := sim.Results(scenarioTags(numServers, sigma, seed)...)
		writeResults(res.Utilisations, res.SystemTimes)
		queue.Summarize(res).Print()

		logrus.Infof("Simulation complete in %s.", time.Since(startTime))
	},
}

// sweepCmd fans a grid of what-if scenarios out over a worker pool and
// concatenates their result tables
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run a grid of what-if scenarios concurrently",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		byClass, err := LoadClusteredRecords(dataPath)
		if err != nil {
			logrus.Fatalf("Loading clustered records: %v", err)
		}
		resolveTunedParams(byClass)

		sweep, err := LoadSweepConfig(sweepConfigPath)
		if err != nil {
			logrus.Fatalf("Loading sweep config: %v", err)
		}
		workers := sweep.Workers
		if workers == 0 {
			workers = runtime.NumCPU()
		}

		var tasks []replicate.Task
		for _, servers := range sweep.NumServers {
			for _, sg := range sweep.Sigmas {
				// sigma enters the estimation itself, so each sigma gets
				// its own parameter set
				classes, err := queue.EstimateAll(byClass, props, sg)
				if err != nil {
					logrus.Fatalf("Estimating class parameters for sigma=%.3f: %v", sg, err)
				}
				for _, sd := range sweep.Seeds {
					tasks = append(tasks, replicate.Task{
						Config: queue.ScenarioConfig{
							NumServers: servers,
							MaxTime:    sweep.MaxTime,
							Seed:       sd,
							Classes:    classes,
						},
						Tags: scenarioTags(servers, sg, sd),
					})
				}
			}
		}

		logrus.Infof("Sweeping %d scenarios over %d workers", len(tasks), workers)
		startTime := time.Now()

		var utilisations []queue.UtilisationRow
		var systemTimes []queue.SystemTimeRow
		for _, outcome := range replicate.Run(tasks, workers) {
			if outcome.Err != nil {
				logrus.Fatalf("Scenario failed: %v", outcome.Err)
			}
			utilisations = append(utilisations, outcome.Results.Utilisations...)
			systemTimes = append(systemTimes, outcome.Results.SystemTimes...)
		}
		writeResults(utilisations, systemTimes)

		logrus.Infof("Sweep complete in %s.", time.Since(startTime))
	},
}

// setupLogging applies the --log flag to the global logger.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// resolveTunedParams fills props and numServers from the tuned params file
// when one is given, without overriding explicit flags. Classes missing a
// prop fall back to 1.0 (no service scaling).
func resolveTunedParams(byClass map[int][]queue.StayRecord) {
	if paramsPath != "" {
		tunedProps, tunedServers, err := LoadTunedParams(paramsPath)
		if err != nil {
			logrus.Fatalf("Loading tuned params: %v", err)
		}
		if len(props) == 0 {
			props = tunedProps
		}
		if numServers == 0 {
			numServers = tunedServers
		}
	}
	maxLabel := -1
	for label := range byClass {
		if label > maxLabel {
			maxLabel = label
		}
	}
	for len(props) <= maxLabel {
		props = append(props, 1.0)
	}
}

// scenarioTags builds the constant columns identifying one scenario run.
func scenarioTags(servers int, sg float64, sd int64) []queue.Tag {
	return []queue.Tag{
		{Key: "num_servers", Value: strconv.Itoa(servers)},
		{Key: "sigma", Value: strconv.FormatFloat(sg, 'f', -1, 64)},
		{Key: "seed", Value: strconv.FormatInt(sd, 10)},
	}
}

// writeResults writes whichever output tables were requested by flag.
func writeResults(utilisations []queue.UtilisationRow, systemTimes []queue.SystemTimeRow) {
	if utilisationsOut != "" {
		f, err := os.Create(utilisationsOut)
		if err != nil {
			logrus.Fatalf("Creating utilisations output: %v", err)
		}
		defer f.Close()
		if err := WriteUtilisations(f, utilisations); err != nil {
			logrus.Fatalf("Writing utilisations: %v", err)
		}
		logrus.Infof("Wrote %d utilisation rows to %s", len(utilisations), utilisationsOut)
	}
	if systemTimesOut != "" {
		f, err := os.Create(systemTimesOut)
		if err != nil {
			logrus.Fatalf("Creating system times output: %v", err)
		}
		defer f.Close()
		if err := WriteSystemTimes(f, systemTimes); err != nil {
			logrus.Fatalf("Writing system times: %v", err)
		}
		logrus.Infof("Wrote %d system time rows to %s", len(systemTimes), systemTimesOut)
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	for _, c := range []*cobra.Command{runCmd, sweepCmd} {
		c.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
		c.Flags().StringVar(&dataPath, "data", "", "Clustered patient-flow CSV (admission_date, true_los, cluster)")
		c.Flags().StringVar(&paramsPath, "params", "", "Tuned parameter file (per-class props, server count, score)")
		c.Flags().StringVar(&utilisationsOut, "out-utilisations", "", "Destination CSV for the utilisation table")
		c.Flags().StringVar(&systemTimesOut, "out-system-times", "", "Destination CSV for the system-time table")
		c.MarkFlagRequired("data")
	}

	runCmd.Flags().IntVar(&numServers, "num-servers", 0, "Number of servers (default: from the params file)")
	runCmd.Flags().Float64Var(&maxTime, "max-time", 365*4, "Simulation horizon in days")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for all random draws")
	runCmd.Flags().Float64Var(&sigma, "sigma", 1.0, "Arrival-rate scaling factor")
	runCmd.Flags().Float64SliceVar(&props, "props", nil, "Comma-separated per-class service scaling factors (default: from the params file)")

	sweepCmd.Flags().StringVar(&sweepConfigPath, "config", "", "Sweep grid YAML (num_servers, sigmas, seeds, max_time, workers)")
	sweepCmd.MarkFlagRequired("config")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
}
