// Package prefixmap implements an ordered registry of prefix labels to
// namespace IRIs.
//
// A PrefixMap expands CURIEs into full IRIs (Resolve), compacts IRIs into
// CURIEs using the longest matching namespace (Shrink), and moves its
// entries in and out of prefix event streams (Import and Export).
//
// Basic usage:
//
//	factory := term.NewDataFactory()
//	prefixes, err := prefixmap.New(factory, []prefixmap.Entry{
//		{Prefix: "schema", Namespace: factory.NamedNode("http://schema.org/")},
//	})
//	if err != nil {
//		return err
//	}
//	iri := prefixes.Resolve(factory.NamedNode("schema:Person"))
//
// The Module type installs a prefix map into an environment.Environment so
// that cloning the environment also clones its prefixes.
//
// All methods are safe for concurrent use. Import applies each event as it
// arrives, so concurrent readers can observe a partially imported map.
package prefixmap
