// Package config provides configuration parsing for laiweb.
//
// The configuration is stored in laiweb.json (or laiweb.yaml) in the
// working directory. Every field is optional; missing values take the
// defaults shown below.
//
// # Configuration File Structure
//
//	{
//	  "dev": {
//	    "host": "localhost",
//	    "port": 3000,
//	    "demo": "app"
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "laiweb"
//	  },
//	  "runtime": {
//	    "keyed": true
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
//	fmt.Println("Listening on", cfg.DevAddress())
package config
