package hooks

// Plugin represents a self-contained observer that can attach hooks to the broker.
type Plugin interface {
	Descriptor() PluginDescriptor
	Register(broker *PluginBroker) error
}

type bundlePlugin struct {
	desc   PluginDescriptor
	bundle HookBundle
}

// NewBundlePlugin builds a plugin from an arbitrary set of hook handlers.
func NewBundlePlugin(name string, category PluginCategory, description string, bundle HookBundle) Plugin {
	return &bundlePlugin{
		desc: PluginDescriptor{
			Name:        name,
			Category:    category,
			Description: description,
		},
		bundle: bundle,
	}
}

func (p *bundlePlugin) Descriptor() PluginDescriptor {
	return p.desc
}

func (p *bundlePlugin) Register(broker *PluginBroker) error {
	if broker == nil {
		return nil
	}
	broker.RegisterBundle(p.desc, p.bundle)
	return nil
}
