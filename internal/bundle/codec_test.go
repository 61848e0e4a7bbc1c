package bundle

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-bundle-keeper/models"
)

func testBundle(payload []byte) models.Bundle {
	return New(models.EncryptionHeader{
		Role:        models.RoleClient,
		SenderID:    "sender",
		RecipientID: "recipient",
		IdentityKey: bytes.Repeat([]byte{1}, 32),
		SigningKey:  bytes.Repeat([]byte{2}, 32),
		BaseKey:     bytes.Repeat([]byte{3}, 32),
	}, payload, bytes.Repeat([]byte{4}, 64))
}

func writeTestFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "b"+FileExt)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// rawContainer writes entries in the given order with arbitrary content.
func rawContainer(t *testing.T, entries ...[2]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: e[0], Method: zip.Store})
		require.NoError(t, err)
		_, err = w.Write([]byte(e[1]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestContentID(t *testing.T) {
	id := ContentID([]byte("ciphertext"))
	assert.Equal(t, id, ContentID([]byte("ciphertext")))
	assert.NotEqual(t, id, ContentID([]byte("ciphertexT")))
	assert.Len(t, id, 43)
	assert.NotContains(t, id, "=")
	assert.NotContains(t, id, "+")
	assert.NotContains(t, id, "/")
}

func TestWriteRead_RoundTrip(t *testing.T) {
	b := testBundle([]byte("sealed bytes"))

	data, err := Marshal(b)
	require.NoError(t, err)
	path := writeTestFile(t, data)

	got, h, err := ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, b.ID, got.ID)
	assert.Equal(t, b.Header, got.Header)
	assert.Equal(t, b.Payload, got.Payload)
	assert.Equal(t, b.Signature, got.Signature)
	assert.Equal(t, int64(len(b.Payload)), got.Size)
	assert.Equal(t, path, got.Source)
	assert.Equal(t, FormatVersion, h.Version)
	assert.Nil(t, h.Extra)
}

func TestWrite_EntryOrderAndPayloadStored(t *testing.T) {
	data, err := Marshal(testBundle(bytes.Repeat([]byte("a"), 4096)))
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)
	assert.Equal(t, HeaderEntry, zr.File[0].Name)
	assert.Equal(t, PayloadEntry, zr.File[1].Name)
	assert.Equal(t, zip.Store, zr.File[1].Method)
}

func TestReadHeader(t *testing.T) {
	b := testBundle([]byte("sealed bytes"))
	data, err := Marshal(b)
	require.NoError(t, err)

	h, err := ReadHeader(writeTestFile(t, data))
	require.NoError(t, err)
	assert.Equal(t, b.ID, h.BundleID)
	assert.Equal(t, b.Header, h.Encryption)

	st, err := Stat(writeTestFile(t, data))
	require.NoError(t, err)
	assert.Equal(t, b.ID, st.ID)
	assert.Nil(t, st.Payload)
}

func TestHeader_PreservesUnknownFields(t *testing.T) {
	b := testBundle([]byte("payload"))
	h := Header{
		BundleID:      b.ID,
		Version:       FormatVersion,
		Encryption:    b.Header,
		Signature:     b.Signature,
		PayloadSize:   b.Size,
		PayloadDigest: b.ID,
	}
	known, err := json.Marshal(h)
	require.NoError(t, err)

	var withExtra map[string]any
	require.NoError(t, json.Unmarshal(known, &withExtra))
	withExtra["x_priority"] = "bulk"
	withExtra["x_hops"] = 3
	headerJSON, err := json.Marshal(withExtra)
	require.NoError(t, err)

	data := rawContainer(t,
		[2]string{HeaderEntry, string(headerJSON)},
		[2]string{"trace.txt", "ignored"},
		[2]string{PayloadEntry, "payload"},
	)

	got, gotHeader, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got.Payload)
	require.Len(t, gotHeader.Extra, 2)
	assert.JSONEq(t, `"bulk"`, string(gotHeader.Extra["x_priority"]))

	again, err := json.Marshal(gotHeader)
	require.NoError(t, err)
	assert.JSONEq(t, string(headerJSON), string(again))
}

func TestHeader_NewerVersionIsRead(t *testing.T) {
	b := testBundle([]byte("payload"))
	h := Header{
		BundleID:      b.ID,
		Version:       FormatVersion + 1,
		Encryption:    b.Header,
		Signature:     b.Signature,
		PayloadSize:   b.Size,
		PayloadDigest: b.ID,
		Extra:         map[string]json.RawMessage{"x_ttl": json.RawMessage(`3600`)},
	}
	headerJSON, err := json.Marshal(h)
	require.NoError(t, err)

	got, gotHeader, err := Unmarshal(rawContainer(t,
		[2]string{HeaderEntry, string(headerJSON)},
		[2]string{PayloadEntry, "payload"},
	))
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
	assert.Equal(t, FormatVersion+1, gotHeader.Version)
	assert.JSONEq(t, `3600`, string(gotHeader.Extra["x_ttl"]))
}

func TestRead_Malformed(t *testing.T) {
	good := testBundle([]byte("payload"))
	goodHeader := func(mutate func(h *Header)) string {
		h := Header{
			BundleID:      good.ID,
			Version:       FormatVersion,
			Encryption:    good.Header,
			Signature:     good.Signature,
			PayloadSize:   good.Size,
			PayloadDigest: good.ID,
		}
		if mutate != nil {
			mutate(&h)
		}
		out, err := json.Marshal(h)
		require.NoError(t, err)
		return string(out)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{name: "not a zip", data: []byte("definitely not a zip archive")},
		{name: "empty", data: nil},
		{name: "missing payload", data: rawContainer(t, [2]string{HeaderEntry, goodHeader(nil)})},
		{name: "missing header", data: rawContainer(t, [2]string{PayloadEntry, "payload"})},
		{name: "header not json", data: rawContainer(t, [2]string{HeaderEntry, "{"}, [2]string{PayloadEntry, "payload"})},
		{name: "tampered payload", data: rawContainer(t, [2]string{HeaderEntry, goodHeader(nil)}, [2]string{PayloadEntry, "pAyload"})},
		{name: "size mismatch", data: rawContainer(t, [2]string{HeaderEntry, goodHeader(nil)}, [2]string{PayloadEntry, "payload+"})},
		{name: "version zero", data: rawContainer(t, [2]string{HeaderEntry, goodHeader(func(h *Header) { h.Version = 0 })}, [2]string{PayloadEntry, "payload"})},
		{name: "no signature", data: rawContainer(t, [2]string{HeaderEntry, goodHeader(func(h *Header) { h.Signature = nil })}, [2]string{PayloadEntry, "payload"})},
		{name: "bad role", data: rawContainer(t, [2]string{HeaderEntry, goodHeader(func(h *Header) { h.Encryption.Role = "relay" })}, [2]string{PayloadEntry, "payload"})},
		{name: "id not content hash", data: rawContainer(t, [2]string{HeaderEntry, goodHeader(func(h *Header) { h.BundleID = "other" })}, [2]string{PayloadEntry, "payload"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Unmarshal(tt.data)
			assert.ErrorIs(t, err, ErrMalformedBundle)
		})
	}
}

func TestReadFile_Missing(t *testing.T) {
	_, _, err := ReadFile(filepath.Join(t.TempDir(), "nope"+FileExt))
	assert.ErrorIs(t, err, ErrMalformedBundle)
}

func TestIsBundleFile(t *testing.T) {
	assert.True(t, IsBundleFile("abc.bundle"))
	assert.True(t, IsBundleFile(FileName("abc")))
	assert.False(t, IsBundleFile(".bundle"))
	assert.False(t, IsBundleFile("abc.bundle.tmp"))
}
