// Package runtime runs the external identify entry points declared by
// script-type providers. DispatchRuntime selects the implementation from the
// manifest's identify.runtime field; every runtime receives the archive
// listing on stdin, one path per line, and answers through its exit code.
package runtime
