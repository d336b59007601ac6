package drs

// DataReferenceSyntaxFilename is the name of the CV file in which the
// data reference syntax is stored.
const DataReferenceSyntaxFilename = "input4MIPs_DRS.json"

// DataReferenceSyntax defines how directory paths and filenames are
// created from metadata.
//
// Within the templates, angle brackets delimit placeholders that are
// replaced with metadata values: with source_id "CR-CMIP-0-2-0",
// "input4MIPs/<source_id>" becomes "input4MIPs/CR-CMIP-0-2-0".
// Square brackets delimit optional sections containing exactly one
// placeholder: "<variable_id>[_<time_range>]" becomes
// "co2_200001-201012" when time_range is available and just "co2" when
// it is not.
type DataReferenceSyntax struct {
	// DirectoryPathTemplate is the template for creating directories.
	DirectoryPathTemplate string `json:"directory_path_template" validate:"required"`

	// DirectoryPathExample is an example of a complete directory path.
	// Non-normative, used in error messages and documentation only.
	DirectoryPathExample string `json:"directory_path_example" validate:"required"`

	// FilenameTemplate is the template for creating filenames.
	FilenameTemplate string `json:"filename_template" validate:"required"`

	// FilenameExample is an example of a complete filename.
	// Non-normative, used in error messages and documentation only.
	FilenameExample string `json:"filename_example" validate:"required"`
}
