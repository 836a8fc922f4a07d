package services

import (
	"context"
	"reflect"
	"testing"

	"stackpulse/internal/models"
	"stackpulse/internal/testutil"
)

func TestTagRegistryResolveIsCaseInsensitive(t *testing.T) {
	conn := testutil.NewDB(t)
	ctx := context.Background()
	reg := NewTagRegistry(conn)

	a, err := reg.Resolve(ctx, "Java")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	b, err := reg.Resolve(ctx, " JAVA ")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if a.Name != "java" || b.Name != "java" {
		t.Errorf("expected lower-cased names, got %q and %q", a.Name, b.Name)
	}

	// 新的 registry 没有 memo，仍应复用库中的标签
	if _, err := NewTagRegistry(conn).Resolve(ctx, "java"); err != nil {
		t.Fatalf("Resolve with fresh registry: %v", err)
	}

	var count int64
	conn.Model(&models.Tag{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 tag, got %d", count)
	}
}

func TestTagRegistryRejectsBlank(t *testing.T) {
	reg := NewTagRegistry(testutil.NewDB(t))
	if _, err := reg.Resolve(context.Background(), "   "); err == nil {
		t.Error("expected error for blank tag")
	}
}

func TestTagRegistryResolveAll(t *testing.T) {
	conn := testutil.NewDB(t)
	tags, err := NewTagRegistry(conn).ResolveAll(context.Background(), []string{"Java", "", "java", "Concurrency"})
	if err != nil {
		t.Fatalf("ResolveAll: %v", err)
	}
	if len(tags) != 2 || tags[0].Name != "java" || tags[1].Name != "concurrency" {
		t.Errorf("unexpected tags: %+v", tags)
	}
}

func TestMissingTags(t *testing.T) {
	conn := testutil.NewDB(t)
	ctx := context.Background()
	if _, err := NewTagRegistry(conn).ResolveAll(ctx, []string{"java", "lambda"}); err != nil {
		t.Fatal(err)
	}

	missing, err := MissingTags(ctx, conn, []string{"kotlin", "java", "scala", "lambda"})
	if err != nil {
		t.Fatalf("MissingTags: %v", err)
	}
	if !reflect.DeepEqual(missing, []string{"kotlin", "scala"}) {
		t.Errorf("unexpected missing tags: %v", missing)
	}
}
