/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/carverauto/siteradar/pkg/config"
	"github.com/carverauto/siteradar/pkg/insight"
	"github.com/carverauto/siteradar/pkg/logger"
	"github.com/carverauto/siteradar/pkg/models"
	"github.com/carverauto/siteradar/pkg/snapshot"
)

type analyzeOptions struct {
	configPath    string
	snapshotPath  string
	format        string
	pointsGrowth  float64
	devicesGrowth float64
}

func newAnalyzeCmd() *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze an exported system snapshot and print the health report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			return runAnalyze(ctx, cmd, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "path to analyzer config file")
	cmd.Flags().StringVarP(&opts.snapshotPath, "snapshot", "s", "", "path to snapshot export file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "json", "output format: json or table")
	cmd.Flags().Float64Var(&opts.pointsGrowth, "points-growth", 0, "assumed monthly point license growth")
	cmd.Flags().Float64Var(&opts.devicesGrowth, "devices-growth", 0, "assumed monthly device license growth")

	_ = cmd.MarkFlagRequired("snapshot")

	return cmd
}

func runAnalyze(ctx context.Context, cmd *cobra.Command, opts *analyzeOptions) error {
	var cfg insight.Config

	if opts.configPath != "" || os.Getenv("SITERADAR_CONFIG") != "" {
		if err := config.NewConfig().LoadAndValidate(ctx, opts.configPath, &cfg); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	snap, err := snapshot.LoadFile(opts.snapshotPath)
	if err != nil {
		return err
	}

	var trend *models.UsageTrend
	if opts.pointsGrowth > 0 || opts.devicesGrowth > 0 {
		trend = &models.UsageTrend{
			PointsPerMonth:  opts.pointsGrowth,
			DevicesPerMonth: opts.devicesGrowth,
		}
	}

	report, err := insight.NewAnalyzer(cfg, log).Analyze(ctx, snap, trend)
	if err != nil {
		return fmt.Errorf("analysis unavailable for this snapshot: %w", err)
	}

	if opts.format == "table" {
		renderTable(cmd, report)
		return nil
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))

	return nil
}

func renderTable(cmd *cobra.Command, report *models.SystemInsightReport) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Overall score: %d (%s)\n", report.OverallScore, report.OverallClass)
	fmt.Fprintf(out, "Devices: %d healthy, %d degraded, %d offline, %d unknown\n\n",
		report.Summary.Healthy, report.Summary.Degraded, report.Summary.Offline, report.Summary.Unknown)

	table := tablewriter.NewTable(out)
	table.Header("Entity", "Score", "Class", "Drivers", "Findings")

	for _, e := range report.Entities {
		_ = table.Append([]string{
			e.EntityName,
			fmt.Sprintf("%.1f", e.Score),
			string(e.Classification),
			fmt.Sprintf("%d", len(e.Drivers)),
			fmt.Sprintf("%d", len(e.Factors)),
		})
	}

	_ = table.Render()

	if len(report.Alerts) == 0 {
		return
	}

	fmt.Fprintln(out)

	alerts := tablewriter.NewTable(out)
	alerts.Header("Severity", "Source", "Message")

	for _, a := range report.Alerts {
		_ = alerts.Append([]string{string(a.Severity), a.Source, a.Message})
	}

	_ = alerts.Render()
}
