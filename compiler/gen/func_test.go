package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnake(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Username", "username"},
		{"FullName", "full_name"},
		{"HTTPCode", "http_code"},
		{"UserID", "user_id"},
		{"XMLParser", "xml_parser"},
		{"getHTTPResponse", "get_http_response"},
		{"already_snake", "already_snake"},
		{"A", "a"},
		{"AB", "ab"},
		{"ABC", "abc"},
		{"", ""},
		{"userInfo", "user_info"},
		{"PHBOrg", "phb_org"},
		{"UserIDs", "user_ids"},
		{"Größe", "größe"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, snake(tt.input))
		})
	}
}

func TestPascal(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"user_info", "UserInfo"},
		{"full_name", "FullName"},
		{"user_id", "UserID"},
		{"http_code", "HTTPCode"},
		{"full-admin", "FullAdmin"},
		{"already", "Already"},
		{"a", "A"},
		{"ab", "Ab"},
		{"a_b", "AB"},
		{"xml_parser", "XMLParser"},
		{"api_url", "APIURL"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, pascal(tt.input))
		})
	}
}

func TestCamel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"user_info", "userInfo"},
		{"full_name", "fullName"},
		{"user_id", "userID"},
		{"http_code", "httpCode"},
		{"full-admin", "fullAdmin"},
		{"already", "already"},
		{"a", "a"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, camel(tt.input))
		})
	}
}

func TestLowerCamel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Executable", "executable"},
		{"CurrentDir", "currentDir"},
		{"Args", "args"},
		{"HTTPCode", "httpCode"},
		{"URL", "url"},
		{"UserID", "userID"},
		{"max_retries", "maxRetries"},
		{"arg", "arg"},
		{"__", "__"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, lowerCamel(tt.input))
		})
	}
}

func TestBuilderField(t *testing.T) {
	assert.Equal(t, "name", builderField("name"))
	assert.Equal(t, "_type", builderField("type"))
	assert.Equal(t, "_func", builderField("func"))
	assert.Equal(t, "_Name", builderField("Name"))
	assert.Equal(t, "len", builderField("len"))
}

func TestParamName(t *testing.T) {
	assert.Equal(t, "name", paramName("name", "b"))
	assert.Equal(t, "_b", paramName("b", "b"))
	assert.Equal(t, "_range", paramName("range", "b"))
	assert.Equal(t, "_string", paramName("string", "b"))
	assert.Equal(t, "_nil", paramName("nil", "b"))
	assert.Equal(t, "__", paramName("__", "b"))
}

func TestAddAcronym(t *testing.T) {
	AddAcronym("GRPC")
	assert.Equal(t, "GRPCClient", pascal("grpc_client"))
}

func TestIsSeparator(t *testing.T) {
	assert.True(t, isSeparator('_'))
	assert.True(t, isSeparator('-'))
	assert.True(t, isSeparator(' '))
	assert.True(t, isSeparator('\t'))
	assert.False(t, isSeparator('a'))
	assert.False(t, isSeparator('1'))
}
