package config

// Capability is an optional feature and whether it is available.
type Capability struct {
	Enabled bool
	// Reason explains why the capability is disabled.
	Reason string
}

// Capabilities lists the optional features of a run. They are resolved once
// from configuration at startup and never re-probed.
type Capabilities struct {
	// Publish is set when updates can be sent to NATS.
	Publish Capability
	// ContentStore is set when resource content can be persisted.
	ContentStore Capability
	// DurableContent is set when persisted content survives the process.
	DurableContent bool
}

// ResolveCapabilities derives the available capabilities from cfg.
func ResolveCapabilities(cfg *Config) Capabilities {
	var caps Capabilities

	if cfg.NATS.URL == "" {
		caps.Publish = Capability{Reason: "nats.url is not configured"}
	} else {
		caps.Publish = Capability{Enabled: true}
	}

	switch {
	case cfg.Storage.Memory:
		caps.ContentStore = Capability{Enabled: true}
	case cfg.NATS.URL == "":
		caps.ContentStore = Capability{Reason: "nats.url is not configured and storage.memory is off"}
	case cfg.Storage.Bucket == "":
		caps.ContentStore = Capability{Reason: "storage.bucket is empty"}
	default:
		caps.ContentStore = Capability{Enabled: true}
		caps.DurableContent = true
	}

	return caps
}
