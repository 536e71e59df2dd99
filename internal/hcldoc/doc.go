// Package hcldoc implements config.Loader for option specifications written
// in HCL.
//
// Top-level attributes describe the module, each `option` block describes
// one option and labeled `mode "KEY"` blocks inside an option declare the
// values of an enumerated type in source order:
//
//	id     = "base"
//	name   = "Base"
//	header = "options/base_options.h"
//
//	option {
//	  name     = "verbose"
//	  category = "common"
//	  type     = "bool"
//	  long     = "verbose"
//	  help     = "print more output"
//	}
//
// The loader does not know which attributes are legal; that is the job of
// the model package, which sees the same config.Document for every format.
package hcldoc
