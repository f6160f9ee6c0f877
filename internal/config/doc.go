// Package config provides configuration parsing for vdsl projects.
//
// The configuration is stored in vdsl.yaml (or vdsl.yml, vdsl.json) at the
// project root. This package handles loading, saving, defaults and
// validation.
//
// # Configuration File Structure
//
//	documents: components
//	strict: false
//	render:
//	  pretty: true
//	  indent: "  "
//	  markWaiting: true
//	preview:
//	  host: localhost
//	  port: 7070
//	  title: My components
//	telemetry:
//	  namespace: vdsl
//	  tracer: vdsl
//
// # Usage
//
//	cfg, err := config.LoadOrDefault(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Addr())
package config
