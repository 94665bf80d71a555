package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yumyai/prophagestat/internal/config"
	"github.com/yumyai/prophagestat/internal/util"
	"github.com/yumyai/prophagestat/logger"
	"github.com/yumyai/prophagestat/pkg/db"
	"github.com/yumyai/prophagestat/pkg/handler"
	"github.com/yumyai/prophagestat/pkg/handler/request"
	"github.com/yumyai/prophagestat/pkg/middle"
	"github.com/yumyai/prophagestat/pkg/model"
)

// cli is the state shared by the commands of one invocation.
type cli struct {
	configPath string
	cfg        *config.Config
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "prophagestat",
		Short:         "Aggregate prophage predictions across tools and genomes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "YAML config file (or set PROPHAGE_CONFIG)")

	root.AddCommand(
		c.summaryCmd(),
		c.trimCmd(),
		c.pivotCmd(),
		c.correlateCmd(),
		c.groupsCmd(),
		c.exportCmd(),
		c.serveCmd(),
		versionCmd(),
	)
	return root
}

func (c *cli) setup() error {
	// Try load env
	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env found, using local environment")
	}

	path := c.configPath
	if path == "" {
		path = os.Getenv("PROPHAGE_CONFIG")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.cfg = cfg

	if err := logger.InitLogger(logger.ParseLevel(cfg.LogLevel)); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.Debug("Config loaded", zap.String("config", path), zap.String("data_dir", cfg.DataDir))
	return nil
}

func (c *cli) dataset() (*model.Dataset, error) {
	if !util.DirExists(c.cfg.DataDir) {
		logger.Warn("Data directory does not exist", zap.String("data_dir", c.cfg.DataDir))
	}

	opts := c.cfg.DatasetOptions()
	if opts.ReferencesPath == "" {
		logger.Warn("No reference file, closest_match left empty")
	}

	logger.Info("Load predictions", zap.String("path", opts.PredictionsPath))
	return model.Build(opts)
}

func (c *cli) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Per-genome, per-tool prediction counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := c.dataset()
			if err != nil {
				return err
			}
			return model.WriteSummaryTSV(cmd.OutOrStdout(), ds.Summary)
		},
	}
}

// intervalFlags are shared by trim, groups and export.
type intervalFlags struct {
	method string
	field  string
	low    float64
	high   float64
	k      float64
}

func (f *intervalFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.method, "method", "quantile", "Interval method: quantile or logsigma")
	cmd.Flags().StringVar(&f.field, "field", "length", "Record field: length, start or end")
	cmd.Flags().Float64Var(&f.low, "low", 0, "Lower quantile (default from config)")
	cmd.Flags().Float64Var(&f.high, "high", 0, "Upper quantile (default from config)")
	cmd.Flags().Float64Var(&f.k, "k", 0, "Log-sigma multiplier (default from config)")
}

// trim applies the flags to ds. Unset bounds fall back to the config.
func (f *intervalFlags) trim(cmd *cobra.Command, cfg *config.Config, ds *model.Dataset) ([]model.Record, model.Interval, error) {
	method, err := model.ParseIntervalMethod(strings.ToLower(strings.TrimSpace(f.method)))
	if err != nil {
		return nil, model.Interval{}, err
	}
	field, err := model.ParseField(f.field)
	if err != nil {
		return nil, model.Interval{}, err
	}

	low, high, k := cfg.Interval.Low, cfg.Interval.High, cfg.Interval.Sigma
	if cmd.Flags().Changed("low") {
		low = f.low
	}
	if cmd.Flags().Changed("high") {
		high = f.high
	}
	if cmd.Flags().Changed("k") {
		k = f.k
	}
	if !(k > 0) {
		return nil, model.Interval{}, fmt.Errorf("--k %v: %w", k, model.ErrInvalidSigma)
	}

	kept, iv, err := ds.Trim(method, field, low, high, k)
	if err != nil {
		return nil, model.Interval{}, err
	}

	logger.Info("Interval computed",
		zap.String("method", string(iv.Method)),
		zap.String("field", field.String()),
		zap.Float64("low", iv.Low),
		zap.Float64("high", iv.High),
		zap.Int("kept", len(kept)),
		zap.Int("total", len(ds.Records)),
	)
	return kept, iv, nil
}

func (c *cli) trimCmd() *cobra.Command {
	var flags intervalFlags
	cmd := &cobra.Command{
		Use:   "trim",
		Short: "Prediction records inside a length interval",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := c.dataset()
			if err != nil {
				return err
			}
			kept, _, err := flags.trim(cmd, c.cfg, ds)
			if err != nil {
				return err
			}
			return model.WriteRecordsTSV(cmd.OutOrStdout(), kept)
		},
	}
	flags.register(cmd)
	return cmd
}

func (c *cli) pivotCmd() *cobra.Command {
	var index, columns, value string
	cmd := &cobra.Command{
		Use:   "pivot",
		Short: "Wide matrix of a summary measure",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rowDim, err := model.ParseDimension(index)
			if err != nil {
				return err
			}
			colDim, err := model.ParseDimension(columns)
			if err != nil {
				return err
			}
			if rowDim == colDim {
				return fmt.Errorf("index and columns must differ (both %s)", rowDim)
			}
			measure, err := model.ParseMeasure(value)
			if err != nil {
				return err
			}

			ds, err := c.dataset()
			if err != nil {
				return err
			}
			table := model.PivotWide(ds.Summary, rowDim, colDim, measure)
			return model.WriteTableTSV(cmd.OutOrStdout(), table, rowDim.String())
		},
	}
	cmd.Flags().StringVar(&index, "index", "genome", "Row dimension")
	cmd.Flags().StringVar(&columns, "columns", "prediction_tool", "Column dimension")
	cmd.Flags().StringVar(&value, "value", "count", "Measure: count or mean_count")
	return cmd
}

func (c *cli) correlateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "correlate",
		Short: "Pearson correlation of per-genome counts between tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := c.dataset()
			if err != nil {
				return err
			}
			table := model.PivotWide(ds.Summary, model.DimGenome, model.DimTool, model.MeasureCount)
			return model.WriteTableTSV(cmd.OutOrStdout(), model.Correlate(table), model.DimTool.String())
		},
	}
}

func (c *cli) groupsCmd() *cobra.Command {
	var flags intervalFlags
	var by, measure string
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Groups ordered by median, highest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dim, err := model.ParseDimension(by)
			if err != nil {
				return err
			}

			ds, err := c.dataset()
			if err != nil {
				return err
			}

			var groups map[string][]float64
			switch request.NewGroupMeasure(measure) {
			case request.GroupMeasureLength:
				kept, _, err := flags.trim(cmd, c.cfg, ds)
				if err != nil {
					return err
				}
				groups = model.GroupLengths(kept, ds.Label(dim, c.cfg.Sources))
			default:
				groups = model.GroupCounts(ds.Summary, dim)
			}

			order, err := model.MedianOrder(groups)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\tmedian\tn\n", dim)
			for _, g := range order {
				fmt.Fprintf(out, "%s\t%g\t%d\n", g.Key, g.Median, g.N)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&by, "by", "closest_match", "Group dimension")
	cmd.Flags().StringVar(&measure, "measure", "count", "Measure: count or length (lengths are trimmed first)")
	flags.register(cmd)
	return cmd
}

func (c *cli) exportCmd() *cobra.Command {
	var flags intervalFlags
	var dbPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Append the aggregates to a SQLite snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := c.dataset()
			if err != nil {
				return err
			}
			_, iv, err := flags.trim(cmd, c.cfg, ds)
			if err != nil {
				return err
			}

			if dbPath == "" {
				dbPath = filepath.Join(c.cfg.DataDir, "db", "prophagestat.db")
			}
			if dir := filepath.Dir(dbPath); !util.DirExists(dir) {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create snapshot dir: %w", err)
				}
			}

			snap, err := db.Open(dbPath)
			if err != nil {
				return err
			}
			defer snap.Close()

			runID, err := snap.Export(cmd.Context(), ds, c.cfg.PredictionsPath(), iv)
			if err != nil {
				return err
			}
			logger.Info("Open database on", zap.String("DB_LOC", dbPath))
			fmt.Fprintln(cmd.OutOrStdout(), runID)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite file (default <data_dir>/db/prophagestat.db)")
	return cmd
}

func (c *cli) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API and heatmap pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := c.dataset()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = c.cfg.Server.Addr
			}

			app := &handler.AppContext{
				Dataset: ds,
				Sources: c.cfg.Sources,
				Defaults: request.IntervalDefaults{
					Low:   c.cfg.Interval.Low,
					High:  c.cfg.Interval.High,
					Sigma: c.cfg.Interval.Sigma,
				},
			}
			mw := middle.CreateMiddlewareLogger(logger.ParseLevel(c.cfg.LogLevel))
			srv := &http.Server{
				Addr:              addr,
				Handler:           NewServer(app, mw),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				logger.Info("Start:", zap.String("Version", VERSION))
				logger.Info("Server starting", zap.String("addr", addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("error starting server: %w", err)
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})

			if err := g.Wait(); err != nil {
				return err
			}
			logger.Info("Server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), VERSION)
		},
	}
}
