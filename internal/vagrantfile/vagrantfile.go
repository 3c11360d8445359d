// Package vagrantfile renders a Vagrantfile from an Environment spec.
//
// The rendered file is a plain Ruby document in the layout vagrant's own
// `vagrant init` produces, extended with per-machine define blocks for
// multi-machine environments.
package vagrantfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/jbweber/drover/api/v1alpha1"
)

// Filename is the file name vagrant looks for in an environment directory.
const Filename = "Vagrantfile"

// fileData is the template input assembled from an Environment spec.
type fileData struct {
	Box        string
	BoxURL     string
	BoxVersion string
	Provider   string
	Machines   []machineData
	Script     string
}

// machineData describes one `config.vm.define` block.
type machineData struct {
	Name      string
	Box       string
	Primary   bool
	CPUs      int
	MemoryMB  int
	Hostname  string
	PrivateIP string
}

var fileTemplate = template.Must(template.New(Filename).Parse(`# -*- mode: ruby -*-
# vi: set ft=ruby :
#
# Generated by drover. Edits are overwritten on the next render.

Vagrant.configure("2") do |config|
  config.vm.box = "{{.Box}}"
{{- if .BoxURL}}
  config.vm.box_url = "{{.BoxURL}}"
{{- end}}
{{- if .BoxVersion}}
  config.vm.box_version = "{{.BoxVersion}}"
{{- end}}
{{- range .Machines}}

  config.vm.define "{{.Name}}"{{if .Primary}}, primary: true{{end}} do |m|
{{- if .Box}}
    m.vm.box = "{{.Box}}"
{{- end}}
{{- if .Hostname}}
    m.vm.hostname = "{{.Hostname}}"
{{- end}}
{{- if .PrivateIP}}
    m.vm.network "private_network", ip: "{{.PrivateIP}}"
{{- end}}
{{- if and $.Provider (or .CPUs .MemoryMB)}}
    m.vm.provider :{{$.Provider}} do |p|
{{- if .CPUs}}
      p.cpus = {{.CPUs}}
{{- end}}
{{- if .MemoryMB}}
      p.memory = {{.MemoryMB}}
{{- end}}
    end
{{- end}}
  end
{{- end}}
{{- if .Script}}

  config.vm.provision "shell", inline: <<-SHELL
{{.Script}}
  SHELL
{{- end}}
end
`))

// Render produces the Vagrantfile content for an environment.
func Render(env *v1alpha1.Environment) (string, error) {
	if env == nil {
		return "", fmt.Errorf("environment cannot be nil")
	}
	if env.Spec.Box == "" {
		return "", fmt.Errorf("environment %s has no box", env.Name)
	}

	data := fileData{
		Box:        env.Spec.Box,
		BoxURL:     env.Spec.BoxURL,
		BoxVersion: env.Spec.BoxVersion,
		Provider:   env.Spec.Provider,
		Script:     strings.TrimSpace(env.Spec.Provision.Script),
	}

	for _, m := range env.Spec.Machines {
		data.Machines = append(data.Machines, machineData{
			Name:      m.Name,
			Box:       m.Box,
			Primary:   m.Primary,
			CPUs:      m.CPUs,
			MemoryMB:  m.MemoryMB,
			Hostname:  m.Hostname,
			PrivateIP: m.PrivateIP,
		})
	}

	var buf strings.Builder
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render Vagrantfile: %w", err)
	}

	return buf.String(), nil
}

// Write renders the environment's Vagrantfile into dir, creating the
// directory if needed.
func Write(env *v1alpha1.Environment, dir string) error {
	content, err := Render(env)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create environment directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, Filename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
