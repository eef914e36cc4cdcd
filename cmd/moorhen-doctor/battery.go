package main

import (
	"github.com/moorhenlabs/moorhen-doctor/pkg/check"
	"github.com/moorhenlabs/moorhen-doctor/pkg/clicheck"
	"github.com/moorhenlabs/moorhen-doctor/pkg/configcheck"
	"github.com/moorhenlabs/moorhen-doctor/pkg/credcheck"
	"github.com/moorhenlabs/moorhen-doctor/pkg/envvarcheck"
	"github.com/moorhenlabs/moorhen-doctor/pkg/netcheck"
	"github.com/moorhenlabs/moorhen-doctor/pkg/nodecheck"
	"github.com/moorhenlabs/moorhen-doctor/pkg/optcheck"
	"github.com/moorhenlabs/moorhen-doctor/pkg/portcheck"
	"github.com/moorhenlabs/moorhen-doctor/pkg/rescheck"
)

// battery assembles the fixed probe battery in its documented category
// order. The order affects only report layout, never correctness.
func battery() []check.Category {
	return []check.Category{
		{Name: nodecheck.Category, Probes: []check.Probe{nodecheck.New()}},
		{Name: clicheck.Category, Probes: []check.Probe{clicheck.New()}},
		{Name: configcheck.Category, Probes: []check.Probe{configcheck.New()}},
		{Name: credcheck.Category, Probes: []check.Probe{credcheck.New()}},
		{Name: portcheck.Category, Probes: []check.Probe{portcheck.New()}},
		{Name: optcheck.Category, Probes: []check.Probe{optcheck.New()}},
		{Name: netcheck.Category, Probes: []check.Probe{netcheck.New()}},
		{Name: rescheck.Category, Probes: []check.Probe{rescheck.New()}},
		{Name: envvarcheck.Category, Probes: []check.Probe{envvarcheck.New()}},
	}
}
