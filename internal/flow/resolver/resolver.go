/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package resolver provides template variable resolution for flow node configurations.
//
// Templates reference prior node outputs as {{nodeId.path}}, the trigger payload
// as {{trigger.path}} and the ambient run context as {{context.path}}. Unresolved
// or malformed references are left verbatim so partial data never fails a run.
package resolver

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var markerPattern = regexp.MustCompile(`\{\{([^{}]+)\}\}`)

// Resolve interpolates every {{...}} marker in the template against the scope.
// Strings without markers are returned unchanged, which makes resolution idempotent.
func Resolve(template string, scope map[string]any) string {
	if !strings.Contains(template, "{{") {
		return template
	}

	return markerPattern.ReplaceAllStringFunc(template, func(match string) string {
		expression := strings.TrimSpace(match[2 : len(match)-2])
		value, ok := lookupPath(expression, scope)
		if !ok {
			return match
		}
		return stringify(value, match)
	})
}

// ResolveValue resolves a configuration value of any shape. Strings are
// interpolated, maps and slices are resolved recursively, everything else is
// returned as is. A string consisting of exactly one marker resolves to the
// referenced value with its original type preserved.
func ResolveValue(value any, scope map[string]any) any {
	switch v := value.(type) {
	case string:
		if expression, ok := singleMarkerExpression(v); ok {
			if resolved, found := lookupPath(expression, scope); found {
				return resolved
			}
			return v
		}
		return Resolve(v, scope)
	case map[string]any:
		resolved := make(map[string]any, len(v))
		for key, item := range v {
			resolved[key] = ResolveValue(item, scope)
		}
		return resolved
	case []any:
		resolved := make([]any, len(v))
		for i, item := range v {
			resolved[i] = ResolveValue(item, scope)
		}
		return resolved
	default:
		return value
	}
}

// ResolveConfig resolves every value of a node configuration map.
func ResolveConfig(config map[string]any, scope map[string]any) map[string]any {
	if config == nil {
		return nil
	}
	resolved := make(map[string]any, len(config))
	for key, value := range config {
		resolved[key] = ResolveValue(value, scope)
	}
	return resolved
}

// singleMarkerExpression reports whether the string is exactly one marker and
// returns its inner expression.
func singleMarkerExpression(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "{{") || !strings.HasSuffix(trimmed, "}}") {
		return "", false
	}
	inner := trimmed[2 : len(trimmed)-2]
	if strings.Contains(inner, "{{") || strings.Contains(inner, "}}") {
		return "", false
	}
	return strings.TrimSpace(inner), true
}

// lookupPath splits the expression on dots and walks the scope tree.
func lookupPath(expression string, scope map[string]any) (any, bool) {
	if expression == "" || scope == nil {
		return nil, false
	}

	segments := strings.Split(expression, ".")
	var current any = scope
	for _, segment := range segments {
		if segment == "" {
			return nil, false
		}
		tree, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = tree[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// stringify renders a resolved value for interpolation into a string.
// Values that cannot be rendered keep the original marker.
func stringify(value any, fallback string) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return fallback
	case float64, float32, int, int64, bool:
		return fmt.Sprintf("%v", v)
	default:
		serialized, err := json.Marshal(v)
		if err != nil {
			return fallback
		}
		return string(serialized)
	}
}
