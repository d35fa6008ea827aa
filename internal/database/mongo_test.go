package database

import "testing"

func TestMongoDatabaseName(t *testing.T) {
	cases := []struct {
		uri  string
		want string
	}{
		{"mongodb://localhost:27017/mindcare", "mindcare"},
		{"mongodb+srv://u:p@cluster0.example.net/therapy?retryWrites=true", "therapy"},
		{"mongodb://localhost:27017/", DefaultMongoDatabase},
		{"mongodb://localhost:27017", DefaultMongoDatabase},
	}
	for _, c := range cases {
		if got := MongoDatabaseName(c.uri); got != c.want {
			t.Errorf("MongoDatabaseName(%q) = %q, want %q", c.uri, got, c.want)
		}
	}
}
