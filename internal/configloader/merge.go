package configloader

import (
	"maps"
	"slices"

	"github.com/yaklabco/javalex/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Optional booleans: override overwrites base if set, so false can win
//   - Severity map: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.LanguageLevel != "" {
		result.LanguageLevel = override.LanguageLevel
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.MaxFileSize != 0 {
		result.MaxFileSize = override.MaxFileSize
	}

	result.MergeWhitespace = mergeBool(result.MergeWhitespace, override.MergeWhitespace)
	result.ExpandDocs = mergeBool(result.ExpandDocs, override.ExpandDocs)
	result.DetectLanguage = mergeBool(result.DetectLanguage, override.DetectLanguage)
	result.IncludeVendored = mergeBool(result.IncludeVendored, override.IncludeVendored)

	result.Severity = mergeSeverities(base.Severity, override.Severity)

	if override.Extensions != nil {
		result.Extensions = slices.Clone(override.Extensions)
	}
	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}

	return result
}

func mergeBool(base, override *bool) *bool {
	if override == nil {
		return base
	}
	return config.Bool(*override)
}

// mergeSeverities deep merges per-code severities.
func mergeSeverities(base, override map[string]config.Severity) map[string]config.Severity {
	if base == nil && override == nil {
		return nil
	}
	result := make(map[string]config.Severity, len(base)+len(override))
	maps.Copy(result, base)
	maps.Copy(result, override)
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
