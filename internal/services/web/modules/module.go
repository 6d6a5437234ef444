// Package modules defines web module registry helpers.
package modules

import (
	module "github.com/direwen/dilemma-web/internal/services/web/module"
	"github.com/direwen/dilemma-web/internal/services/web/state"
)

// Mount aliases the module mount contract.
type Mount = module.Mount

// Module aliases the module interface contract.
type Module = module.Module

// Dependencies carries what the module registry needs to compose the web
// surface. Every module reaches the survey backend through Experiments.
type Dependencies struct {
	Experiments state.Factory
	// ApproachDistance is the trident zone distance drawn on the board.
	ApproachDistance int
}
