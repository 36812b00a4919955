// Package config provides configuration parsing for domkit.
//
// The configuration is stored in domkit.json in the working directory.
// This package handles loading, saving, and validating configuration.
// Values missing from the file are filled from New().
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "host": "localhost",
//	    "port": 7070,
//	    "metrics": true,
//	    "tracing": false
//	  },
//	  "render": {
//	    "pretty": true,
//	    "indent": "  "
//	  },
//	  "request": {
//	    "timeout": "10s",
//	    "parseJSON": false
//	  },
//	  "style": {
//	    "properties": ["transform", "transition", "userSelect"]
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Address())
package config
