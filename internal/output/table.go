package output

import (
	"bytes"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/jbweber/drover/internal/fleet"
	"github.com/jbweber/drover/internal/vagrant"
)

// TableFormatter formats output as human-readable tables
type TableFormatter struct {
	NoHeaders bool
}

// FormatStatuses formats a list of machine statuses as a table
func (f *TableFormatter) FormatStatuses(statuses []vagrant.MachineStatus) (string, error) {
	if len(statuses) == 0 {
		return "No machines found\n", nil
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, "NAME\tSTATE\tPROVIDER")
	}

	for _, s := range statuses {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", s.Name, dash(string(s.State)), dash(s.Provider))
	}

	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush table writer: %w", err)
	}

	return buf.String(), nil
}

// FormatBoxes formats a list of installed boxes as a table
func (f *TableFormatter) FormatBoxes(boxes []vagrant.Box) (string, error) {
	if len(boxes) == 0 {
		return "No boxes found\n", nil
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, "NAME\tPROVIDER\tVERSION")
	}

	for _, b := range boxes {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", b.Name, dash(b.Provider), dash(b.Version))
	}

	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush table writer: %w", err)
	}

	return buf.String(), nil
}

// FormatPlugins formats a list of installed plugins as a table
func (f *TableFormatter) FormatPlugins(plugins []vagrant.Plugin) (string, error) {
	if len(plugins) == 0 {
		return "No plugins found\n", nil
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, "NAME\tVERSION\tSYSTEM")
	}

	for _, p := range plugins {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%t\n", p.Name, dash(p.Version), p.System)
	}

	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush table writer: %w", err)
	}

	return buf.String(), nil
}

// FormatSSHConfig formats an ssh configuration as sorted key/value rows
func (f *TableFormatter) FormatSSHConfig(cfg vagrant.SSHConfig) (string, error) {
	if len(cfg) == 0 {
		return "No ssh configuration found\n", nil
	}

	keys := make([]string, 0, len(cfg))
	for k := range cfg {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, "KEY\tVALUE")
	}

	for _, k := range keys {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", k, cfg[k])
	}

	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush table writer: %w", err)
	}

	return buf.String(), nil
}

// FormatSnapshots formats a list of snapshot names as a table
func (f *TableFormatter) FormatSnapshots(snapshots []string) (string, error) {
	if len(snapshots) == 0 {
		return "No snapshots found\n", nil
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, "NAME")
	}

	for _, s := range snapshots {
		_, _ = fmt.Fprintf(w, "%s\n", s)
	}

	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush table writer: %w", err)
	}

	return buf.String(), nil
}

// FormatMachineInfos formats a list of merged machine details as a table
func (f *TableFormatter) FormatMachineInfos(infos []fleet.MachineInfo) (string, error) {
	if len(infos) == 0 {
		return "No machines found\n", nil
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, "NAME\tSTATE\tPROVIDER\tID\tINDEX")
	}

	for _, info := range infos {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			info.Name, dash(string(info.State)), dash(info.Provider), dash(info.ID), dash(info.IndexUUID))
	}

	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush table writer: %w", err)
	}

	return buf.String(), nil
}

// FormatReport formats an environment report as a table with one row per machine
func (f *TableFormatter) FormatReport(report *fleet.Report) (string, error) {
	if report == nil {
		return "", fmt.Errorf("report cannot be nil")
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, "ENVIRONMENT\tPHASE\tMACHINE\tSTATE\tPROVIDER")
	}

	if len(report.Machines) == 0 {
		_, _ = fmt.Fprintf(w, "%s\t%s\t-\t-\t-\n", report.Name, report.Phase)
	}

	for _, m := range report.Machines {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			report.Name, report.Phase, m.Name, dash(string(m.State)), dash(m.Provider))
	}

	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush table writer: %w", err)
	}

	return buf.String(), nil
}

// dash substitutes a placeholder for values vagrant did not report
func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
