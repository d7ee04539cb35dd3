package shortread

// Opts configures a Resolver. Paths are injected by the caller; nothing in
// this package refers to a fixed location.
type Opts struct {
	// KeyPath is the tab-separated sample key with columns Strain, Sex,
	// Injection, Comments and Name.
	KeyPath string
	// AssociationPath is the spreadsheet mapping "Sample Name" to
	// "fastq name". Either .xlsx or a delimited text file.
	AssociationPath string
	// FastqDir holds the short-read files named in the spreadsheet.
	FastqDir string
	// OutDir receives one FOFN per resolved sample.
	OutDir string

	// Injection is the required value of the key file's Injection column.
	Injection string
	// R1Marker identifies a first-of-pair file name. R2Marker replaces it
	// to derive the mate's name.
	R1Marker, R2Marker string
	// FOFNSuffix is appended to the sample ID to name the FOFN.
	FOFNSuffix string
}

// DefaultOpts sets the default values to Opts.
var DefaultOpts = Opts{
	Injection:  "Sham",
	R1Marker:   "_1.fq.gz",
	R2Marker:   "_2.fq.gz",
	FOFNSuffix: "_shortreads.fofn",
}
