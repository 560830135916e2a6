// Package config provides configuration parsing for isoview projects.
//
// The configuration is stored in isoview.json at the project root.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "name": "forum",
//	  "placeholder": "ui-view",
//	  "manifest": "states.yaml",
//	  "document": {
//	    "title": "Forum",
//	    "lang": "en",
//	    "stylesheets": ["/static/site.css"],
//	    "scripts": ["/static/app.js"]
//	  },
//	  "serve": {
//	    "host": "localhost",
//	    "port": 3000,
//	    "metrics": true
//	  },
//	  "export": {
//	    "output": "dist",
//	    "concurrency": 8,
//	    "s3": {"bucket": "forum-site", "prefix": "www", "region": "eu-west-1"}
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
//	fmt.Println("Listening on", cfg.ServeAddress())
package config
