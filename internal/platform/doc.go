package platform

// Package platform contains the native capabilities the bridge relies on:
// resolving and dispatching open requests (Android activity manager or a
// desktop player executable with the system opener as fallback), querying
// total memory, and the single-instance lock.
