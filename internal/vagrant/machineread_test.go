package vagrant

import (
	"errors"
	"reflect"
	"testing"
)

func TestDecodeMachineReadable(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []record
	}{
		{
			name:   "empty output",
			output: "",
			want:   nil,
		},
		{
			name:   "single record",
			output: "1424098924,web,state,running\n",
			want: []record{
				{timestamp: "1424098924", target: "web", kind: "state", data: "running"},
			},
		},
		{
			name:   "order preserved across targets",
			output: "1,web,state,running\n2,db,state,poweroff\n3,web,provider-name,virtualbox\n",
			want: []record{
				{timestamp: "1", target: "web", kind: "state", data: "running"},
				{timestamp: "2", target: "db", kind: "state", data: "poweroff"},
				{timestamp: "3", target: "web", kind: "provider-name", data: "virtualbox"},
			},
		},
		{
			name:   "commas after the third stay in data",
			output: "1,web,state-human-long,The VM is running,really,truly\n",
			want: []record{
				{timestamp: "1", target: "web", kind: "state-human-long", data: "The VM is running,really,truly"},
			},
		},
		{
			name:   "blank lines skipped",
			output: "\n1,web,state,running\n\n   \n2,web,provider-name,virtualbox\n",
			want: []record{
				{timestamp: "1", target: "web", kind: "state", data: "running"},
				{timestamp: "2", target: "web", kind: "provider-name", data: "virtualbox"},
			},
		},
		{
			name:   "empty target field",
			output: "1424141572,,box-name,precise64\n",
			want: []record{
				{timestamp: "1424141572", target: "", kind: "box-name", data: "precise64"},
			},
		},
		{
			name:   "empty data field",
			output: "1,web,state,\n",
			want: []record{
				{timestamp: "1", target: "web", kind: "state", data: ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeMachineReadable(tt.output)
			if err != nil {
				t.Fatalf("decodeMachineReadable() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("decodeMachineReadable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodeMachineReadableNoise(t *testing.T) {
	tests := []struct {
		name   string
		output string
	}{
		{
			name:   "ui chatter with normal field count",
			output: "1,web,ui,info,Bringing machine 'web' up...\n",
		},
		{
			name:   "metadata with three fields only",
			output: "1,web,metadata\n",
		},
		{
			name:   "action with extra fields",
			output: "1,web,action,up,start,extra,fields\n",
		},
		{
			name:   "description and box-info records",
			output: "1,,Description,some text\n2,,box-info,more text\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeMachineReadable(tt.output)
			if err != nil {
				t.Fatalf("decodeMachineReadable() error = %v", err)
			}
			if len(got) != 0 {
				t.Errorf("decodeMachineReadable() = %v, want no records", got)
			}
		})
	}
}

func TestDecodeMachineReadableMalformed(t *testing.T) {
	tests := []struct {
		name   string
		output string
		line   string
	}{
		{
			name:   "two fields",
			output: "1424098924,web\n",
			line:   "1424098924,web",
		},
		{
			name:   "three fields with unrecognized kind",
			output: "1424098924,web,state\n",
			line:   "1424098924,web,state",
		},
		{
			name:   "malformed line after valid records",
			output: "1,web,state,running\ngarbage\n",
			line:   "garbage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeMachineReadable(tt.output)
			if err == nil {
				t.Fatal("decodeMachineReadable() expected error, got nil")
			}

			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("decodeMachineReadable() error = %v, want *ParseError", err)
			}
			if parseErr.Line != tt.line {
				t.Errorf("ParseError.Line = %q, want %q", parseErr.Line, tt.line)
			}
			if parseErr.Output != tt.output {
				t.Errorf("ParseError.Output = %q, want %q", parseErr.Output, tt.output)
			}
		})
	}
}

func TestDecodeData(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{
			name: "no escape token",
			data: "precise64",
			want: "precise64",
		},
		{
			name: "single escape token",
			data: "1.1.4%!(VAGRANT_COMMA) system",
			want: "1.1.4, system",
		},
		{
			name: "multiple escape tokens",
			data: "a%!(VAGRANT_COMMA)b%!(VAGRANT_COMMA)c",
			want: "a,b,c",
		},
		{
			name: "empty data",
			data: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeData(tt.data); got != tt.want {
				t.Errorf("DecodeData(%q) = %q, want %q", tt.data, got, tt.want)
			}
		})
	}
}
