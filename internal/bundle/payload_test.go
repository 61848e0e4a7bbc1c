package bundle

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-bundle-keeper/models"
)

func TestPayload_RoundTrip(t *testing.T) {
	in := models.BundlePayload{
		Acks: []models.Acknowledgement{{BundleID: "b1", Size: 10}},
		ADUs: []models.ADU{
			{AppID: "mail", Seq: 2, Payload: []byte("second")},
			{AppID: "mail", Seq: 1, Payload: []byte("first")},
			{AppID: "chat", Seq: 7, Payload: bytes.Repeat([]byte("z"), 10000)},
		},
	}

	data, err := EncodePayload(in)
	require.NoError(t, err)

	out, err := DecodePayload(data)
	require.NoError(t, err)

	assert.Equal(t, in.Acks, out.Acks)
	require.Len(t, out.ADUs, 3)
	assert.Equal(t, "chat", out.ADUs[0].AppID)
	assert.Equal(t, int64(10000), out.ADUs[0].Size)
	assert.Equal(t, "mail", out.ADUs[1].AppID)
	assert.Equal(t, int64(1), out.ADUs[1].Seq)
	assert.Equal(t, []byte("first"), out.ADUs[1].Payload)
	assert.Equal(t, int64(2), out.ADUs[2].Seq)

	// compressed entries keep a long run much smaller than its size
	assert.Less(t, len(data), 2000)
}

func TestPayload_AckOnly(t *testing.T) {
	data, err := EncodePayload(models.BundlePayload{})
	require.NoError(t, err)

	out, err := DecodePayload(data)
	require.NoError(t, err)
	assert.Empty(t, out.Acks)
	assert.Empty(t, out.ADUs)
}

func TestEncodePayload_Rejects(t *testing.T) {
	_, err := EncodePayload(models.BundlePayload{ADUs: []models.ADU{{AppID: "../etc", Seq: 1, Payload: []byte("x")}}})
	assert.ErrorIs(t, err, ErrMalformedBundle)

	_, err = EncodePayload(models.BundlePayload{ADUs: []models.ADU{{AppID: ".tmp-mail", Seq: 1, Payload: []byte("x")}}})
	assert.ErrorIs(t, err, ErrMalformedBundle)

	_, err = EncodePayload(models.BundlePayload{ADUs: []models.ADU{{AppID: "mail", Seq: 1}}})
	assert.Error(t, err)
}

func TestDecodePayload_Malformed(t *testing.T) {
	build := func(names ...string) []byte {
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		for _, n := range names {
			w, err := zw.Create(n)
			require.NoError(t, err)
			content := "x"
			if n == AckEntry {
				content = `{"acks":[]}`
			}
			_, err = w.Write([]byte(content))
			require.NoError(t, err)
		}
		require.NoError(t, zw.Close())
		return buf.Bytes()
	}

	tests := []struct {
		name string
		data []byte
	}{
		{name: "garbage", data: []byte("nope")},
		{name: "no ack file", data: build("adus/mail/1.adu")},
		{name: "bad seq", data: build(AckEntry, "adus/mail/one.adu")},
		{name: "zero seq", data: build(AckEntry, "adus/mail/0.adu")},
		{name: "missing app", data: build(AckEntry, "adus/1.adu")},
		{name: "nested app", data: build(AckEntry, "adus/a/b/1.adu")},
		{name: "wrong ext", data: build(AckEntry, "adus/mail/1.txt")},
		{name: "temp file app", data: build(AckEntry, "adus/.tmp-mail/1.adu")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePayload(tt.data)
			assert.ErrorIs(t, err, ErrMalformedBundle)
		})
	}
}

func TestDecodePayload_IgnoresUnknownEntries(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range map[string]string{
		AckEntry:          `{"acks":[{"bundle_id":"b9","size":3}]}`,
		"README":          "hello",
		"adus/mail/3.adu": "three",
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	out, err := DecodePayload(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []models.Acknowledgement{{BundleID: "b9", Size: 3}}, out.Acks)
	require.Len(t, out.ADUs, 1)
	assert.Equal(t, int64(3), out.ADUs[0].Seq)
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	err := Extract(models.BundlePayload{
		Acks: []models.Acknowledgement{{BundleID: "b1", Size: 4}},
		ADUs: []models.ADU{{AppID: "mail", Seq: 5, Payload: []byte("five")}},
	}, dir)
	require.NoError(t, err)

	ack, err := os.ReadFile(filepath.Join(dir, AckEntry))
	require.NoError(t, err)
	assert.Contains(t, string(ack), `"b1"`)

	adu, err := os.ReadFile(filepath.Join(dir, "adus", "mail", "5.adu"))
	require.NoError(t, err)
	assert.Equal(t, []byte("five"), adu)
}
