package token

// Test files are not scanned.

//cdk:export
func NotScanned(x float64) {}
