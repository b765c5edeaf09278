package types

// BatchManifest lists robot descriptions converted together by the batch
// command. Entry-level values override the manifest defaults.
type BatchManifest struct {
	Defaults BatchDefaults `yaml:"defaults"`
	Robots   []BatchEntry  `yaml:"robots"`
}

type BatchDefaults struct {
	Mode      ConvertMode  `yaml:"mode,omitempty"`
	Format    OutputFormat `yaml:"format,omitempty"`
	Overwrite bool         `yaml:"overwrite,omitempty"`
	OutputDir string       `yaml:"output_dir,omitempty"`
}

type BatchEntry struct {
	Input     string       `yaml:"input"`
	Output    string       `yaml:"output,omitempty"`
	Mode      ConvertMode  `yaml:"mode,omitempty"`
	Format    OutputFormat `yaml:"format,omitempty"`
	Overwrite *bool        `yaml:"overwrite,omitempty"`
}
