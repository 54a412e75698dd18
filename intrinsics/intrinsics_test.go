package intrinsics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRef_MarshalJSON(t *testing.T) {
	ref := Ref{LogicalName: "TrailBucket"}
	data, err := json.Marshal(ref)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Ref": "TrailBucket"}`, string(data))
}

func TestGetAtt_MarshalJSON(t *testing.T) {
	getAtt := GetAtt{LogicalName: "TrailDeliveryRole", Attribute: "Arn"}
	data, err := json.Marshal(getAtt)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Fn::GetAtt": ["TrailDeliveryRole", "Arn"]}`, string(data))
}

func TestSub_MarshalJSON(t *testing.T) {
	sub := Sub{String: "${AWS::Region}-trail"}
	data, err := json.Marshal(sub)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Fn::Sub": "${AWS::Region}-trail"}`, string(data))
}

func TestSubWithMap_MarshalJSON(t *testing.T) {
	sub := SubWithMap{
		String: "${Bucket}-archive",
		Variables: map[string]any{
			"Bucket": Ref{LogicalName: "TrailBucket"},
		},
	}
	data, err := json.Marshal(sub)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Fn::Sub"`)
	assert.Contains(t, string(data), `"${Bucket}-archive"`)
}

func TestJoin_MarshalJSON(t *testing.T) {
	join := Join{Delimiter: ":", Values: []any{"arn", "aws", "logs"}}
	data, err := json.Marshal(join)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Fn::Join": [":", ["arn", "aws", "logs"]]}`, string(data))
}

func TestPseudoParameters(t *testing.T) {
	tests := []struct {
		name     string
		ref      Ref
		expected string
	}{
		{"region", AWS_REGION, `{"Ref": "AWS::Region"}`},
		{"account id", AWS_ACCOUNT_ID, `{"Ref": "AWS::AccountId"}`},
		{"partition", AWS_PARTITION, `{"Ref": "AWS::Partition"}`},
		{"stack name", AWS_STACK_NAME, `{"Ref": "AWS::StackName"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.ref)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))
		})
	}
}

func TestParameter_MarshalJSON_AsRef(t *testing.T) {
	param := Parameter{
		Name:    "Region",
		Type:    "String",
		Default: "us-east-1",
	}

	data, err := json.Marshal(param)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Ref": "Region"}`, string(data))
}

func TestParameter_MarshalJSON_EmbeddedCopyKeepsName(t *testing.T) {
	param := Parameter{Name: "TrailBucketName", Type: "String"}

	// Assigning a parameter into an any-typed property copies the struct;
	// the name must survive the copy.
	var bucketName any = param

	data, err := json.Marshal(bucketName)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Ref": "TrailBucketName"}`, string(data))
}

func TestParameter_MarshalJSON_UnnamedFails(t *testing.T) {
	_, err := json.Marshal(Parameter{Type: "String"})
	assert.Error(t, err)
}

func TestParameter_ToDefinition(t *testing.T) {
	param := Parameter{
		Type:                  "String",
		Description:           "SIEM forwarder destination",
		Default:               "arn:aws:events:us-east-1:000000000000:event-bus/placeholder",
		AllowedPattern:        `^arn:aws[a-z-]*:.*$`,
		ConstraintDescription: "must be a syntactically valid ARN",
	}

	def := param.ToDefinition()
	assert.Equal(t, "String", def["Type"])
	assert.Equal(t, "SIEM forwarder destination", def["Description"])
	assert.Equal(t, "arn:aws:events:us-east-1:000000000000:event-bus/placeholder", def["Default"])
	assert.Equal(t, `^arn:aws[a-z-]*:.*$`, def["AllowedPattern"])
	assert.NotContains(t, def, "AllowedValues")
}

func TestServicePrincipal_MarshalJSON(t *testing.T) {
	single := ServicePrincipal{"cloudtrail.amazonaws.com"}
	data, err := json.Marshal(single)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Service": "cloudtrail.amazonaws.com"}`, string(data))

	multi := ServicePrincipal{"cloudtrail.amazonaws.com", "events.amazonaws.com"}
	data, err = json.Marshal(multi)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Service": ["cloudtrail.amazonaws.com", "events.amazonaws.com"]}`, string(data))
}

func TestPolicyDocument_MarshalJSON(t *testing.T) {
	doc := PolicyDocument{
		Version: "2012-10-17",
		Statement: []any{
			PolicyStatement{
				Effect:    "Allow",
				Principal: ServicePrincipal{"cloudtrail.amazonaws.com"},
				Action:    "sts:AssumeRole",
			},
		},
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))

	assert.Equal(t, "2012-10-17", parsed["Version"])
	statements := parsed["Statement"].([]any)
	require.Len(t, statements, 1)
	stmt := statements[0].(map[string]any)
	assert.Equal(t, "Allow", stmt["Effect"])
	assert.Equal(t, "sts:AssumeRole", stmt["Action"])
}

func TestList(t *testing.T) {
	tags := List(Tag{Key: "Team", Value: "security"}, Tag{Key: "Env", Value: "prod"})
	assert.Len(t, tags, 2)
	assert.Equal(t, "Team", tags[0].Key)
}

func TestAny(t *testing.T) {
	values := Any("logs:CreateLogStream", "logs:PutLogEvents")
	assert.Equal(t, []any{"logs:CreateLogStream", "logs:PutLogEvents"}, values)
}
