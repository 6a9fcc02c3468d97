package cli

// Flags holds all command-line flag values
type Flags struct {
	CfgFile    string
	InputPath  string
	OutputPath string
	Format     string
	Archive    bool
	Verbose    bool
	CheckOnly  bool

	// Parser flags
	StrictDuplicates bool
	AllowComments    bool
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		InputPath:  "spanish.txt",
		OutputPath: "spanish.csv",
		Format:     "csv",
	}
}
