// Package domain contains the value types shared by every layer of the
// playground pipeline: documents and change events, the two-case transform
// result, graph descriptors, the process-wide pipeline state, error policies,
// diagnostics, and the sentinel errors used to classify failures.
//
// Nothing in this package holds locks or performs I/O. Stateful buffers live
// in the document package; orchestration lives in the app package.
package domain
