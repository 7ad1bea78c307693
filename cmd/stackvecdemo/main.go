// Command stackvecdemo exercises the adaptive vector: a small vector that
// fits on the stack, a large one that falls back to the heap, and a vector
// of counted elements with a tight stack margin.
package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jacadcaps/stackvector/hoststack"
	"github.com/jacadcaps/stackvector/stackvec"
)

// Config holds the demo configuration.
type Config struct {
	StackBudget   uint64 `mapstructure:"stackBudget"`   // stack budget for the demo task, in bytes
	SmallCount    int    `mapstructure:"smallCount"`    // element count expected to fit on the stack
	LargeCount    int    `mapstructure:"largeCount"`    // element count expected to overflow to the heap
	CountedCount  int    `mapstructure:"countedCount"`  // element count for the lifecycle demonstration
	CountedMargin uint64 `mapstructure:"countedMargin"` // stack margin for the lifecycle demonstration
}

var (
	configFile = pflag.String("config", "", "Path to optional YAML configuration file")
	logLevel   = pflag.String("log-level", "debug", "Log level (debug, info, warn, error)")
)

func main() {
	pflag.Parse()

	logger, err := initLogger(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Starting stackvecdemo",
		zap.Uint64("stackBudget", cfg.StackBudget),
		zap.Int("smallCount", cfg.SmallCount),
		zap.Int("largeCount", cfg.LargeCount),
	)

	registry := prometheus.NewRegistry()
	metrics, err := stackvec.NewMetrics(registry, "stackvecdemo")
	if err != nil {
		logger.Fatal("Failed to register metrics", zap.Error(err))
	}

	hoststack.Run(uintptr(cfg.StackBudget), func() {
		scenario(logger, cfg, metrics)
	})

	stats := stackvec.DefaultStatistics()
	logger.Info("Allocation statistics",
		zap.Int64("stackAllocations", stats.StackAllocations()),
		zap.Int64("heapAllocations", stats.HeapAllocations()),
		zap.Int64("releases", stats.Releases()),
		zap.Int64("scratchOverflows", stats.Fallbacks(stackvec.FallbackScratchOverflow)),
		zap.Int64("headroomFallbacks", stats.Fallbacks(stackvec.FallbackInsufficientHeadroom)),
	)

	families, err := registry.Gather()
	if err != nil {
		logger.Fatal("Failed to gather metrics", zap.Error(err))
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			logger.Info("Metric",
				zap.String("name", mf.GetName()),
				zap.Float64("value", m.GetCounter().GetValue()),
			)
		}
	}
}

// scenario walks the three allocation outcomes: frame-local, heap
// overflow, and owned element lifecycle under a tight margin.
func scenario(logger *zap.Logger, cfg *Config, metrics *stackvec.Metrics) {
	var small stackvec.Vector[int]
	stackvec.Init(&small, cfg.SmallCount,
		stackvec.WithLogger[int](logger),
		stackvec.WithCheckedAccess[int](),
		stackvec.WithMetrics[int](metrics),
	)
	defer small.Release()

	logger.Info("Small vector",
		zap.Bool("valid", small.IsValid()),
		zap.Bool("onStack", small.IsAllocatedOnStack()),
		zap.String("origin", small.Origin().String()),
	)

	if small.IsValid() {
		small.ForEach(func(member *int, index int) {
			*member = index
		})
		small.ForEachValue(func(member int, index int) {
			logger.Debug("Member", zap.Int("index", index), zap.Int("value", member))
		})
	}

	var large stackvec.Vector[int]
	stackvec.Init(&large, cfg.LargeCount,
		stackvec.WithLogger[int](logger),
		stackvec.WithMetrics[int](metrics),
	)
	defer large.Release()

	logger.Info("Large vector",
		zap.Bool("onStack", large.IsAllocatedOnStack()),
		zap.String("origin", large.Origin().String()),
	)

	constructed := 0
	var counted stackvec.Vector[countedElement]
	stackvec.Init(&counted, cfg.CountedCount,
		stackvec.WithStackMargin[countedElement](uintptr(cfg.CountedMargin)),
		stackvec.WithElementLifecycle[countedElement](
			func(index int) countedElement {
				constructed++
				return countedElement{val: constructed}
			},
			func(member *countedElement) {
				logger.Debug("Destruct", zap.Int("value", member.val))
			},
		),
		stackvec.WithLogger[countedElement](logger),
		stackvec.WithMetrics[countedElement](metrics),
	)
	defer counted.Release()

	logger.Info("Counted vector",
		zap.String("origin", counted.Origin().String()),
		zap.Int("constructed", constructed),
	)
}

// countedElement gets a construction sequence number and logs destruction.
type countedElement struct {
	val int
}

// loadConfig builds the demo configuration from defaults, an optional YAML
// file, and environment variables.
func loadConfig(configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("stackBudget", hoststack.DefaultBudget)
	v.SetDefault("smallCount", 10)
	v.SetDefault("largeCount", 500000)
	v.SetDefault("countedCount", 100)
	v.SetDefault("countedMargin", 2048)

	v.SetEnvPrefix("STACKVECDEMO")
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &config, nil
}

// initLogger creates a console zap logger at the requested level.
func initLogger(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.Set(level); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
