// Package config provides configuration management for lstack.
//
// Configuration is loaded from multiple YAML sources and merged in order,
// with later sources overriding earlier ones:
//
//  1. Default Configuration (built in)
//     - Reproduces the fixed install directory, repository, readiness marker
//       and endpoint template the fixture has always used
//
//  2. User Configuration (~/.config/lstack/config.yaml)
//
//  3. Project Configuration (./.lstack/config.yaml)
//     - Lets a repository pin services, timeouts or a private emulator fork
//
// LoadConfigFromPath skips layers 2 and 3 and applies a single file on top of
// the defaults.
//
// # Configuration Structure
//
//	install:
//	  dir: /tmp/localstack_install_dir
//	  repoURL: https://github.com/atlassian/localstack
//	  markerFile: localstack/constants.py
//	  buildCommand: make install
//
//	emulator:
//	  command: ["make", "-C", "/tmp/localstack_install_dir", "infra"]
//	  readyMarker: "Ready."
//	  configArtifact: localstack/constants.py
//	  startupTimeout: 5m
//	  shutdownGrace: 5s
//	  services: ["s3", "sqs:4576"]
//
//	exec:
//	  extraPath: /usr/local/bin/
//	  shell: bash
//
//	endpoints:
//	  scheme: http
//	  host: localhost
//	  virtualHosts:
//	    s3: test.localhost.atlassian.io
//
//	logging:
//	  level: info
//
// Setting a virtualHosts entry to the empty string removes the default
// rewrite for that service.
package config
