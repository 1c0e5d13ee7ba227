package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lfarias/fleet-hours/internal/labor"
	"github.com/lfarias/fleet-hours/internal/telemetry"
	"github.com/lfarias/fleet-hours/internal/workday"
)

const timestampLayout = "2006-01-02T15:04:05"

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"sun":       time.Sunday,
	"monday":    time.Monday,
	"mon":       time.Monday,
	"tuesday":   time.Tuesday,
	"tue":       time.Tuesday,
	"wednesday": time.Wednesday,
	"wed":       time.Wednesday,
	"thursday":  time.Thursday,
	"thu":       time.Thursday,
	"friday":    time.Friday,
	"fri":       time.Friday,
	"saturday":  time.Saturday,
	"sat":       time.Saturday,
}

// scheduleConfig is one work-schedule entry from the config file.
type scheduleConfig struct {
	Effective            string           `mapstructure:"effective"`
	DayShiftStart        string           `mapstructure:"day-shift-start"`
	NightShiftStart      string           `mapstructure:"night-shift-start"`
	JourneyLength        map[string]int64 `mapstructure:"journey-length"`
	DiscountDeficitHours bool             `mapstructure:"discount-deficit-hours"`
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze worked hours from a telemetry log",
	Long: `This command reads a telemetry log, assembles road trips, and prints the
per-day worked hours breakdown. Log lines have the form

    eventID|driverID|plate|2006-01-02T15:04:05|payload|location

Work schedules are taken from the "schedules" key of the config file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Prevent showing usage after validation
		cmd.SilenceUsage = true

		v := vipers[cmd]

		tz, err := time.LoadLocation(v.GetString("time-zone"))
		if err != nil {
			return err
		}

		var scheduleCfgs []scheduleConfig
		if err := viper.UnmarshalKey("schedules", &scheduleCfgs); err != nil {
			return fmt.Errorf("invalid schedules configuration: %w", err)
		}
		schedules, err := buildScheduleTable(tz, scheduleCfgs)
		if err != nil {
			return err
		}

		nightHours, err := labor.NewNightHours(v.GetInt64("night-hour-seconds"))
		if err != nil {
			return err
		}

		in, err := os.Open(v.GetString("input"))
		if err != nil {
			return err
		}
		defer in.Close()

		level := zerolog.WarnLevel
		if viper.GetBool("verbose") {
			level = zerolog.DebugLevel
		}
		log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

		return runAnalyze(os.Stdout, in, log, tz, schedules, nightHours, workday.Options{
			BypassIncompleteStops: v.GetBool("bypass-incomplete-stops"),
			BypassIncompleteTrips: v.GetBool("bypass-incomplete-road-trips"),
		})
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().String("input", "", "Path to the telemetry log file")
	analyzeCmd.MarkFlagRequired("input")
	analyzeCmd.Flags().String("time-zone", "Local", "Time zone the telemetry timestamps are expressed in")
	analyzeCmd.Flags().Int64("night-hour-seconds", labor.DefaultNightHourSeconds, "Reckoned length of a night hour in seconds")
	analyzeCmd.Flags().Bool("bypass-incomplete-stops", false, "Fold incomplete stop events into the previous segment")
	analyzeCmd.Flags().Bool("bypass-incomplete-road-trips", false, "Skip road trips that never completed")
}

func buildScheduleTable(tz *time.Location, cfgs []scheduleConfig) (*workday.ScheduleTable, error) {
	entries := make([]workday.WorkSchedule, len(cfgs))
	for i, cfg := range cfgs {
		effective, err := time.ParseInLocation(time.DateOnly, cfg.Effective, tz)
		if err != nil {
			return nil, fmt.Errorf("invalid effective date in schedule %d: %w", i, err)
		}
		dayStart, err := workday.ParseClockTime(cfg.DayShiftStart)
		if err != nil {
			return nil, fmt.Errorf("invalid day-shift-start in schedule %d: %w", i, err)
		}
		nightStart, err := workday.ParseClockTime(cfg.NightShiftStart)
		if err != nil {
			return nil, fmt.Errorf("invalid night-shift-start in schedule %d: %w", i, err)
		}

		entries[i] = workday.WorkSchedule{
			Effective:       effective,
			DayShiftStart:   dayStart,
			NightShiftStart: nightStart,
			DiscountDeficit: cfg.DiscountDeficitHours,
		}
		for name, length := range cfg.JourneyLength {
			wd, ok := weekdays[strings.ToLower(name)]
			if !ok {
				return nil, fmt.Errorf("unknown weekday %q in schedule %d", name, i)
			}
			entries[i].JourneyLength[wd] = length
		}
	}
	return workday.NewScheduleTable(entries)
}

func runAnalyze(out io.Writer, in io.Reader, log zerolog.Logger, tz *time.Location, schedules *workday.ScheduleTable, nightHours workday.NightHourConverter, opts workday.Options) error {
	pipeline := telemetry.NewPipeline(log, workday.NewAnalyzer(schedules, nightHours, opts))

	scanner := bufio.NewScanner(in)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "|")
		if len(fields) != 6 {
			return fmt.Errorf("line %d: expected 6 fields, got %d", lineno, len(fields))
		}
		ts, err := time.ParseInLocation(timestampLayout, fields[3], tz)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineno, err)
		}
		if err := pipeline.Parse(fields[0], fields[1], fields[2], ts, fields[4], fields[5]); err != nil {
			return fmt.Errorf("line %d: %w", lineno, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	pipeline.Close()

	fmt.Fprintf(out, "# Worked days\n")
	for _, day := range pipeline.WorkedDays() {
		fmt.Fprintf(out, "\n## %s (%s)\n\n", day.Date, day.Weekday)
		for _, seg := range day.Events {
			fmt.Fprintf(out, "- %s - %s: %s %s (%s) %s\n", seg.Time, seg.End, seg.TypeName, seg.Plate, seg.Duration, seg.Location)
		}
		fmt.Fprintln(out)
		writeTotals(out, day.Totals.Formatted())
	}
	fmt.Fprintf(out, "\n# Period totals\n\n")
	writeTotals(out, pipeline.Totalizers().Formatted())

	return nil
}

func writeTotals(out io.Writer, t workday.FormattedTotals) {
	fmt.Fprintf(out, "- Driving: %s\n", t.Driving)
	fmt.Fprintf(out, "- Waiting: %s\n", t.Waiting)
	fmt.Fprintf(out, "- Feeding: %s\n", t.Feeding)
	fmt.Fprintf(out, "- Resting: %s\n", t.Resting)
	fmt.Fprintf(out, "- Stopped: %s\n", t.Stopped)
	fmt.Fprintf(out, "- Day shift: %s\n", t.DayShift)
	fmt.Fprintf(out, "- Night shift: %s\n", t.NightShift)
	fmt.Fprintf(out, "- Worked: %s\n", t.Worked)
	fmt.Fprintf(out, "- Overtime: %s\n", t.Overtime)
}
