package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
)

const (
	envData        = "DASHBOARD_DATA"
	envAddr        = "DASHBOARD_ADDR"
	envLoadTimeout = "DASHBOARD_LOAD_TIMEOUT"

	defaultData        = "ecommerce_data.csv"
	defaultAddr        = ":8080"
	defaultLoadTimeout = 5 * time.Minute
)

func addCommands(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the dataset and serve the dashboard API",
		Args:  cobra.NoArgs,
		Run:   serve}
	cmd.Flags().String("addr", "", "listen address (default: $"+envAddr+" or "+defaultAddr+")")
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "report",
		Short: "Compute the dashboard once and print it as JSON",
		Args:  cobra.NoArgs,
		Run:   report}
	cmd.Flags().String("start", "", "range start, YYYY-MM-DD (default: first purchase)")
	cmd.Flags().String("end", "", "range end, YYYY-MM-DD (default: last purchase)")
	cmd.Flags().String("panel", "", "compute a single panel instead of the whole dashboard")
	root.AddCommand(cmd)
}

func main() {
	root := &cobra.Command{
		Use:   "dashboard",
		Short: "E-commerce order analytics dashboard"}
	root.PersistentFlags().String("data", "", "dataset path or DSN (default: $"+envData+" or "+defaultData+")")
	root.PersistentFlags().String("source", "csv", "dataset source type: csv, sqlite or postgres")
	root.PersistentFlags().String("table", "", "table to read for SQL sources (default: orders)")
	root.PersistentFlags().String("load-timeout", "", "dataset load timeout (default: $"+envLoadTimeout+" or 5m)")
	addCommands(root)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
