package ingest

// ProgressReporter receives pipeline progress callbacks. Implementations
// must tolerate being called from a single goroutine in pipeline order.
type ProgressReporter interface {
	OnDiscoveryStart()
	OnDiscoveryComplete(files int)
	OnFileProcessingStart(totalFiles int)
	OnFileProcessed(fileName string)
	OnStorageStart(units int)
	OnStorageComplete(documents, units int)
}

// NoOpProgressReporter is used when no progress reporting is wanted.
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnDiscoveryStart()                      {}
func (n *NoOpProgressReporter) OnDiscoveryComplete(files int)          {}
func (n *NoOpProgressReporter) OnFileProcessingStart(totalFiles int)   {}
func (n *NoOpProgressReporter) OnFileProcessed(fileName string)        {}
func (n *NoOpProgressReporter) OnStorageStart(units int)               {}
func (n *NoOpProgressReporter) OnStorageComplete(documents, units int) {}
