// Package config provides run configuration for plugcompat.
//
// # Overview
//
// Values are layered, lowest precedence first:
//
//  1. Built-in defaults (Default)
//  2. An optional YAML file (--config)
//  3. PLUGCOMPAT_* environment variables
//  4. Command-line flags, applied by pkg/cli
//
// Validate must be called once all layers are applied.
//
// # Environment
//
//	PLUGCOMPAT_PLUGINS_FILE="plugins.list"
//	PLUGCOMPAT_MANIFEST="plugins.txt"
//	PLUGCOMPAT_PLATFORM_VERSION=""          # empty: resolve from the feed
//	PLUGCOMPAT_PLATFORM_FALLBACK="2.479.1"
//	PLUGCOMPAT_RUNTIME_VERSION="21"
//	PLUGCOMPAT_LATEST_CORE_URL="https://updates.jenkins.io/stable/latestCore.txt"
//	PLUGCOMPAT_CATALOG_URLS="https://a/uc.json,https://b/uc.actual.json"
//	PLUGCOMPAT_FORMAT="text"                # text, json
//	PLUGCOMPAT_METRICS_FILE=""
//	PLUGCOMPAT_LOG_LEVEL="info"
//	PLUGCOMPAT_OTEL_ENABLED="false"
//	PLUGCOMPAT_OTEL_ENDPOINT="localhost:4317"
//
// # Config file
//
//	runtime_version: "17"
//	feed:
//	  catalog_urls:
//	    - https://mirror.example.com/update-center.actual.json
//	bands:
//	  - min_platform: "2.463"
//	    runtimes: ["17", "21"]
//	  - min_platform: "1.0"
//	    runtimes: ["8", "11"]
//
// A bands list in the file replaces the built-in table entirely.
package config
