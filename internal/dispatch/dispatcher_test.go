package dispatch

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"postpilot/internal/models"
)

type memPostRepo struct {
	mu           sync.Mutex
	seq          int64
	posts        map[int64]*models.ScheduledPost
	listDueCalls int
	transitions  int
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{posts: make(map[int64]*models.ScheduledPost)}
}

func (r *memPostRepo) add(post models.ScheduledPost) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	post.ID = r.seq
	if post.Status == "" {
		post.Status = models.PostStatusPending
	}
	r.posts[post.ID] = &post
	return post.ID
}

func (r *memPostRepo) status(id int64) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.posts[id].Status
}

func (r *memPostRepo) Create(ctx context.Context, post *models.ScheduledPost) (int64, error) {
	return r.add(*post), nil
}

func (r *memPostRepo) GetByID(ctx context.Context, id int64) (*models.ScheduledPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	cp := *post
	return &cp, nil
}

func (r *memPostRepo) List(ctx context.Context) ([]*models.ScheduledPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var posts []*models.ScheduledPost
	for _, post := range r.posts {
		cp := *post
		posts = append(posts, &cp)
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].ScheduledAt.Before(posts[j].ScheduledAt)
	})
	return posts, nil
}

func (r *memPostRepo) ListDue(ctx context.Context, now time.Time) ([]*models.ScheduledPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listDueCalls++
	var due []*models.ScheduledPost
	for _, post := range r.posts {
		if post.Status == models.PostStatusPending && !post.ScheduledAt.After(now) {
			cp := *post
			due = append(due, &cp)
		}
	}
	return due, nil
}

func (r *memPostRepo) UpdatePending(ctx context.Context, id int64, caption string, scheduledAt time.Time, platforms []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok || post.Status != models.PostStatusPending {
		return 0, nil
	}
	post.Caption = caption
	post.ScheduledAt = scheduledAt
	post.Platforms = platforms
	return 1, nil
}

func (r *memPostRepo) Transition(ctx context.Context, id int64, status string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok || post.Status != models.PostStatusPending {
		return 0, nil
	}
	post.Status = status
	r.transitions++
	return 1, nil
}

func (r *memPostRepo) Remove(ctx context.Context, id int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return 0, nil
	}
	delete(r.posts, id)
	return 1, nil
}

type memOutcomeRepo struct {
	mu       sync.Mutex
	seq      int64
	outcomes []*models.PublishOutcome
}

func (r *memOutcomeRepo) Create(ctx context.Context, outcome *models.PublishOutcome) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	cp := *outcome
	cp.ID = r.seq
	r.outcomes = append(r.outcomes, &cp)
	return cp.ID, nil
}

func (r *memOutcomeRepo) ListByPostID(ctx context.Context, postID int64) ([]*models.PublishOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var outcomes []*models.PublishOutcome
	for _, outcome := range r.outcomes {
		if outcome.PostID == postID {
			outcomes = append(outcomes, outcome)
		}
	}
	return outcomes, nil
}

func (r *memOutcomeRepo) byPlatform(postID int64) map[string]bool {
	outcomes, _ := r.ListByPostID(context.Background(), postID)
	m := make(map[string]bool, len(outcomes))
	for _, outcome := range outcomes {
		m[outcome.Platform] = outcome.Success
	}
	return m
}

type fakePublisher struct {
	mu      sync.Mutex
	fail    map[string]bool
	calls   int
	started chan struct{}
	release chan struct{}
}

func (p *fakePublisher) Publish(ctx context.Context, mediaRef, caption, platform string) error {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()

	if p.started != nil {
		p.started <- struct{}{}
	}
	if p.release != nil {
		<-p.release
	}
	if p.fail[platform] {
		return errors.New("platform rejected the post")
	}
	return nil
}

func (p *fakePublisher) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func duePost(platforms ...string) models.ScheduledPost {
	return models.ScheduledPost{
		MediaRef:    "https://media.test/abc",
		MediaKind:   models.MediaKindImage,
		Caption:     "hello",
		Platforms:   platforms,
		ScheduledAt: time.Now().Add(-time.Minute),
	}
}

func TestTickMarksDuePostPosted(t *testing.T) {
	pr := newMemPostRepo()
	po := &memOutcomeRepo{}
	pub := &fakePublisher{}
	id := pr.add(duePost("instagram"))

	d := NewDispatcher(pr, po, pub, time.Second, 4)
	d.Tick()

	require.Equal(t, models.PostStatusPosted, pr.status(id))
	require.Equal(t, map[string]bool{"instagram": true}, po.byPlatform(id))
}

func TestTickMarksFailedAndNeverRetries(t *testing.T) {
	pr := newMemPostRepo()
	po := &memOutcomeRepo{}
	pub := &fakePublisher{fail: map[string]bool{"instagram": true}}
	id := pr.add(duePost("instagram"))

	d := NewDispatcher(pr, po, pub, time.Second, 4)
	d.Tick()

	require.Equal(t, models.PostStatusFailed, pr.status(id))
	require.Equal(t, 1, pub.callCount())

	d.Tick()
	require.Equal(t, models.PostStatusFailed, pr.status(id))
	require.Equal(t, 1, pub.callCount(), "failed posts must not be re-attempted")
}

func TestTickPartialFailureMarksFailedWithLog(t *testing.T) {
	pr := newMemPostRepo()
	po := &memOutcomeRepo{}
	pub := &fakePublisher{fail: map[string]bool{"tiktok": true}}
	id := pr.add(duePost("instagram", "tiktok"))

	d := NewDispatcher(pr, po, pub, time.Second, 4)
	d.Tick()

	require.Equal(t, models.PostStatusFailed, pr.status(id))
	require.Equal(t, map[string]bool{"instagram": true, "tiktok": false}, po.byPlatform(id))
}

func TestTickLeavesFuturePostPending(t *testing.T) {
	pr := newMemPostRepo()
	po := &memOutcomeRepo{}
	pub := &fakePublisher{}

	post := duePost("instagram")
	post.ScheduledAt = time.Now().Add(time.Hour)
	id := pr.add(post)

	d := NewDispatcher(pr, po, pub, time.Second, 4)
	for i := 0; i < 3; i++ {
		d.Tick()
	}

	require.Equal(t, models.PostStatusPending, pr.status(id))
	require.Equal(t, 0, pub.callCount())
}

func TestTickProcessesRemainingPostsWhenOneFails(t *testing.T) {
	pr := newMemPostRepo()
	po := &memOutcomeRepo{}
	pub := &fakePublisher{fail: map[string]bool{"tiktok": true}}

	failing := pr.add(duePost("tiktok"))
	healthy := pr.add(duePost("instagram"))

	d := NewDispatcher(pr, po, pub, time.Second, 4)
	d.Tick()

	require.Equal(t, models.PostStatusFailed, pr.status(failing))
	require.Equal(t, models.PostStatusPosted, pr.status(healthy))
}

func TestConcurrentTicksTransitionOnce(t *testing.T) {
	pr := newMemPostRepo()
	po := &memOutcomeRepo{}
	pub := &fakePublisher{}
	id := pr.add(duePost("instagram"))

	// Two independent dispatchers over the same store, like two ticks
	// racing each other; the conditional transition keeps one a no-op.
	a := NewDispatcher(pr, po, pub, time.Second, 4)
	b := NewDispatcher(pr, po, pub, time.Second, 4)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); a.Tick() }()
	go func() { defer wg.Done(); b.Tick() }()
	wg.Wait()

	require.Equal(t, models.PostStatusPosted, pr.status(id))
	require.Equal(t, 1, pr.transitions, "record must transition exactly once")
}

func TestTickSkipsWhilePreviousTickRuns(t *testing.T) {
	pr := newMemPostRepo()
	po := &memOutcomeRepo{}
	pub := &fakePublisher{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	pr.add(duePost("instagram"))

	d := NewDispatcher(pr, po, pub, time.Second, 4)

	done := make(chan struct{})
	go func() {
		d.Tick()
		close(done)
	}()

	<-pub.started
	d.Tick() // previous tick still mid-publish, must be a no-op
	close(pub.release)
	<-done

	pr.mu.Lock()
	defer pr.mu.Unlock()
	require.Equal(t, 1, pr.listDueCalls, "overlapping tick must not scan the store")
}

func TestTickMarksEmptyPlatformSetFailed(t *testing.T) {
	pr := newMemPostRepo()
	po := &memOutcomeRepo{}
	pub := &fakePublisher{}
	id := pr.add(duePost())

	d := NewDispatcher(pr, po, pub, time.Second, 4)
	d.Tick()

	require.Equal(t, models.PostStatusFailed, pr.status(id))
	require.Equal(t, 0, pub.callCount())
}
