package inference

// FrequencyMetadataKeys names the metadata used for frequency handling.
type FrequencyMetadataKeys struct {
	// FrequencyMetadataKey is the global attribute which carries the
	// data's frequency.
	FrequencyMetadataKey string

	// NoTimeAxisFrequency is the frequency value which indicates that
	// the file has no time axis, i.e. is fixed in time.
	NoTimeAxisFrequency string
}

func DefaultFrequencyMetadataKeys() FrequencyMetadataKeys {
	return FrequencyMetadataKeys{
		FrequencyMetadataKey: "frequency",
		NoTimeAxisFrequency:  "fx",
	}
}
