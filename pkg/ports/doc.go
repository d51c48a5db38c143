/*
Package ports defines the driven ports (interfaces) for the survey engine.

These interfaces decouple the navigation core from external implementations,
allowing the engine to work with various catalog sources, storage backends and
presentation frontends.

# Key Interfaces

  - Catalog: Id-indexed lookup of immutable Question definitions.
  - SubmissionGateway: Fetches prior submissions and appends a completed one.
  - BlobStore: The opaque remote value the gateway reads and rewrites.
  - DistributedLocker: Optional coordination around the read-modify-write of the blob.
  - Presenter: The presentation collaborator notified of question changes and completion.
*/
package ports
