package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/MKhiriev/go-school-agenda/internal/logger"
	"github.com/MKhiriev/go-school-agenda/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAttachmentSvc(t *testing.T) (AttachmentService, *store.Storages) {
	t.Helper()
	storages := newTestStorages(t)
	return NewAttachmentService(storages.Records, storages.Files, newUserLocks(), logger.Nop()), storages
}

func TestAddAttachment_StoresFileAndRegisters(t *testing.T) {
	svc, _ := newTestAttachmentSvc(t)
	ctx := context.Background()

	att, err := svc.AddAttachment(ctx, "anna", "418230", "la mia foto.jpg", strings.NewReader("jpeg bytes"))

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(att.StoredName, "418230_"))
	assert.True(t, strings.HasSuffix(att.StoredName, "_la_mia_foto.jpg"))
	assert.Equal(t, "la mia foto.jpg", att.OriginalName)
	assert.Equal(t, "/api/profiles/anna/attachments/"+att.StoredName, att.URL)

	rc, err := svc.OpenAttachment(ctx, "anna", att.StoredName)
	require.NoError(t, err)
	defer rc.Close()
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(content))

	attachments, err := svc.Attachments(ctx, "anna")
	require.NoError(t, err)
	require.Len(t, attachments["418230"], 1)
	assert.Equal(t, att, attachments["418230"][0])
}

func TestAddAttachment_SanitizesPathCharacters(t *testing.T) {
	svc, _ := newTestAttachmentSvc(t)

	att, err := svc.AddAttachment(context.Background(), "anna", "418230",
		`..\..\evil /name.pdf`, strings.NewReader("pdf"))

	require.NoError(t, err)
	assert.NotContains(t, att.StoredName, "/")
	assert.NotContains(t, att.StoredName, `\`)
	assert.NotContains(t, att.StoredName, " ")
}

func TestAddAttachment_NoFileName(t *testing.T) {
	svc, _ := newTestAttachmentSvc(t)

	_, err := svc.AddAttachment(context.Background(), "anna", "418230", "", strings.NewReader("x"))

	assert.ErrorIs(t, err, ErrNoFileNameProvided)
}

func TestDeleteAttachment_RemovesRegistryAndFile(t *testing.T) {
	svc, _ := newTestAttachmentSvc(t)
	ctx := context.Background()

	att, err := svc.AddAttachment(ctx, "anna", "418230", "notes.pdf", strings.NewReader("pdf"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAttachment(ctx, "anna", "418230", att.StoredName))

	attachments, err := svc.Attachments(ctx, "anna")
	require.NoError(t, err)
	assert.Empty(t, attachments["418230"])

	_, err = svc.OpenAttachment(ctx, "anna", att.StoredName)
	assert.ErrorIs(t, err, store.ErrFileNotFound)
}

func TestDeleteAttachment_Idempotent(t *testing.T) {
	svc, _ := newTestAttachmentSvc(t)
	ctx := context.Background()

	att, err := svc.AddAttachment(ctx, "anna", "418230", "notes.pdf", strings.NewReader("pdf"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAttachment(ctx, "anna", "418230", att.StoredName))
	require.NoError(t, svc.DeleteAttachment(ctx, "anna", "418230", att.StoredName))
	require.NoError(t, svc.DeleteAttachment(ctx, "anna", "no_such_event", "ghost.pdf"))
}

func TestDeleteAttachment_KeepsSiblings(t *testing.T) {
	svc, _ := newTestAttachmentSvc(t)
	ctx := context.Background()

	first, err := svc.AddAttachment(ctx, "anna", "418230", "a.pdf", strings.NewReader("a"))
	require.NoError(t, err)
	second, err := svc.AddAttachment(ctx, "anna", "418230", "b.pdf", strings.NewReader("b"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAttachment(ctx, "anna", "418230", first.StoredName))

	attachments, err := svc.Attachments(ctx, "anna")
	require.NoError(t, err)
	require.Len(t, attachments["418230"], 1)
	assert.Equal(t, second.StoredName, attachments["418230"][0].StoredName)
}
