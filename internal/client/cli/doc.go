// Package cli provides the interactive galaxyterm command-line client.
//
// It wires configuration, the blog API client, the session store and an
// interactive REPL. Typical flow: probe the saved session, prompt for
// credentials when needed, and execute user commands against the blog.
//
// Key features:
//   - Login / Signup / Logout with an interactive auth form
//   - Profile viewing and section-scoped editing (info, theme)
//   - Background and avatar replacement from local files
//   - Article authoring, listing, reading and deletion
//   - Gallery browsing, photo sharing and search
//
// The REPL is started via App.Root(ctx), which blocks until the user
// exits. See App and runREPL for details.
package cli
