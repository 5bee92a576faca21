package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ecommerce-dashboard/internal/api"
	"ecommerce-dashboard/internal/api/handler"
	"ecommerce-dashboard/internal/model"
	"ecommerce-dashboard/internal/pipeline"
	"ecommerce-dashboard/pkg/router"
	"ecommerce-dashboard/pkg/utils"

	"github.com/spf13/cobra"
)

func fatal(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	os.Exit(1)
}

// Returns the value of the named string flag, falling back to the given
// environment variable and then to def.
func flagString(cmd *cobra.Command, name, env, def string) string {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		fatal("%s", err.Error())
	}
	if value != "" {
		return value
	}
	if env != "" {
		if value = os.Getenv(env); value != "" {
			return value
		}
	}
	return def
}

func sourceConfig(cmd *cobra.Command) model.Source {
	return model.Source{
		Type:  flagString(cmd, "source", "", model.SourceCSV),
		URL:   flagString(cmd, "data", envData, defaultData),
		Table: flagString(cmd, "table", "", model.DefaultTable),
	}
}

func loadDataset(ctx context.Context, cmd *cobra.Command, src model.Source) *model.Dataset {
	timeout := utils.ParseDuration(flagString(cmd, "load-timeout", envLoadTimeout, ""), defaultLoadTimeout)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ds, err := pipeline.Load(ctx, src)
	if err != nil {
		fatal("%s", err.Error())
	}
	return ds
}

func serve(cmd *cobra.Command, args []string) {
	cfg := model.ServerConfig{
		Addr:   flagString(cmd, "addr", envAddr, defaultAddr),
		Source: sourceConfig(cmd),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ds := loadDataset(ctx, cmd, cfg.Source)

	r := router.New()
	api.RegisterRoutes(r, handler.New(ds, pipeline.DefaultRegistry()))

	if err := r.Start(ctx, cfg.Addr); err != nil {
		fatal("%s", err.Error())
	}
}

func report(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	ds := loadDataset(ctx, cmd, sourceConfig(cmd))

	rng, err := pipeline.ParseRange(
		flagString(cmd, "start", "", ""),
		flagString(cmd, "end", "", ""),
		pipeline.DefaultRange(ds))
	if err != nil {
		fatal("%s", err.Error())
	}

	reg := pipeline.DefaultRegistry()
	var out interface{}
	if name := flagString(cmd, "panel", "", ""); name != "" {
		panel, err := pipeline.RunOne(ctx, ds, rng, reg, name)
		if err != nil {
			fatal("%s", err.Error())
		}
		out = panel
	} else {
		out = pipeline.Run(ctx, ds, rng, reg)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fatal("%s", err.Error())
	}
}
