package resolver

// NamespaceProxyResolver implements Resolver by forwarding to a live
// Namespace.  Nothing is cached: every call observes the current state of the
// target.
type NamespaceProxyResolver struct {
	target Namespace
}

func NewNamespaceProxyResolver(target Namespace) *NamespaceProxyResolver {
	return &NamespaceProxyResolver{target: target}
}

// Resolve implements the Resolver interface
func (r *NamespaceProxyResolver) Resolve(name string) (any, bool, error) {
	if r.target == nil {
		return nil, false, nil
	}
	return r.target.Member(name)
}

// Names implements the Resolver interface
func (r *NamespaceProxyResolver) Names() []string {
	if r.target == nil {
		return nil
	}
	return r.target.MemberNames()
}
