package service

import (
	"context"
	"sort"
	"time"

	"bookclub/internal/models"
	"bookclub/internal/repository"
)

// In-memory repository fakes shared by the service tests.

type memberKey struct {
	userID uint
	clubID uint
}

type fakeClubRepo struct {
	clubs   map[uint]*models.Club
	members map[memberKey]models.Role
	nextID  uint
}

func newFakeClubRepo() *fakeClubRepo {
	return &fakeClubRepo{
		clubs:   make(map[uint]*models.Club),
		members: make(map[memberKey]models.Role),
	}
}

func (r *fakeClubRepo) CreateClub(_ context.Context, club *models.Club, creatorID uint) error {
	r.nextID++
	club.ID = r.nextID
	r.clubs[club.ID] = club
	r.members[memberKey{creatorID, club.ID}] = models.RoleAdmin
	return nil
}

func (r *fakeClubRepo) GetClubByID(_ context.Context, id uint) (*models.Club, error) {
	club, ok := r.clubs[id]
	if !ok {
		return nil, models.NewNotFoundError("Club", id)
	}
	return club, nil
}

func (r *fakeClubRepo) GetClubByInvitationCode(_ context.Context, code string) (*models.Club, error) {
	for _, club := range r.clubs {
		if club.InvitationCode == code {
			return club, nil
		}
	}
	return nil, models.NewNotFoundError("Club", 0)
}

func (r *fakeClubRepo) RoleOf(_ context.Context, userID, clubID uint) (models.Role, error) {
	return r.members[memberKey{userID, clubID}], nil
}

func (r *fakeClubRepo) AddMember(_ context.Context, m *models.ClubMembership) error {
	key := memberKey{m.UserID, m.ClubID}
	if _, exists := r.members[key]; exists {
		return models.NewDuplicateError("You are already a member of this club")
	}
	r.members[key] = m.Role
	return nil
}

func (r *fakeClubRepo) RemoveMember(_ context.Context, userID, clubID uint) error {
	delete(r.members, memberKey{userID, clubID})
	return nil
}

func (r *fakeClubRepo) ListMemberIDs(_ context.Context, clubID uint) ([]uint, error) {
	var ids []uint
	for key := range r.members {
		if key.clubID == clubID {
			ids = append(ids, key.userID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *fakeClubRepo) ListMembers(_ context.Context, clubID uint) ([]models.ClubMembership, error) {
	var out []models.ClubMembership
	for key, role := range r.members {
		if key.clubID == clubID {
			out = append(out, models.ClubMembership{ClubID: clubID, UserID: key.userID, Role: role})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

// addMemberWithRole is a test seeding shortcut.
func (r *fakeClubRepo) addMemberWithRole(userID, clubID uint, role models.Role) {
	r.members[memberKey{userID, clubID}] = role
}

type likeKey struct {
	userID   uint
	targetID uint
}

type fakePostRepo struct {
	posts  map[uint]*models.Post
	likes  map[likeKey]bool
	nextID uint
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{
		posts: make(map[uint]*models.Post),
		likes: make(map[likeKey]bool),
	}
}

func (r *fakePostRepo) Create(_ context.Context, post *models.Post) error {
	r.nextID++
	post.ID = r.nextID
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	r.posts[post.ID] = post
	return nil
}

func (r *fakePostRepo) GetByID(_ context.Context, id uint, _ uint) (*models.Post, error) {
	post, ok := r.posts[id]
	if !ok {
		return nil, models.NewNotFoundError("Post", id)
	}
	return post, nil
}

func (r *fakePostRepo) ListByClub(_ context.Context, clubID uint, filter repository.PostFilter, _ uint) ([]*models.Post, error) {
	var out []*models.Post
	for _, post := range r.posts {
		if post.ClubID != clubID {
			continue
		}
		if filter.Category != "" && post.Category != filter.Category {
			continue
		}
		out = append(out, post)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsPinned != out[j].IsPinned {
			return out[i].IsPinned
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakePostRepo) Update(_ context.Context, post *models.Post) error {
	r.posts[post.ID] = post
	return nil
}

func (r *fakePostRepo) SetPinned(_ context.Context, post *models.Post, pinned bool) error {
	post.IsPinned = pinned
	return nil
}

func (r *fakePostRepo) SetLocked(_ context.Context, post *models.Post, locked bool) error {
	post.IsLocked = locked
	return nil
}

func (r *fakePostRepo) ReplaceTags(_ context.Context, post *models.Post, tags []models.Tag) error {
	post.Tags = tags
	return nil
}

func (r *fakePostRepo) Delete(_ context.Context, post *models.Post) error {
	delete(r.posts, post.ID)
	return nil
}

func (r *fakePostRepo) IsLiked(_ context.Context, userID, postID uint) (bool, error) {
	return r.likes[likeKey{userID, postID}], nil
}

func (r *fakePostRepo) LikedPostIDs(_ context.Context, userID uint, postIDs []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool, len(postIDs))
	for _, id := range postIDs {
		if r.likes[likeKey{userID, id}] {
			liked[id] = true
		}
	}
	return liked, nil
}

func (r *fakePostRepo) Like(_ context.Context, userID, postID uint) error {
	r.likes[likeKey{userID, postID}] = true
	return nil
}

func (r *fakePostRepo) Unlike(_ context.Context, userID, postID uint) error {
	delete(r.likes, likeKey{userID, postID})
	return nil
}

func (r *fakePostRepo) CountLikes(_ context.Context, postID uint) (int64, error) {
	var n int64
	for key := range r.likes {
		if key.targetID == postID {
			n++
		}
	}
	return n, nil
}

type fakeCommentRepo struct {
	comments map[uint]*models.Comment
	likes    map[likeKey]bool
	nextID   uint
	nextSeq  int64
	now      time.Time
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{
		comments: make(map[uint]*models.Comment),
		likes:    make(map[likeKey]bool),
		// Fixed base time so identical timestamps exercise the sequence
		// tie-break.
		now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *models.Comment) error {
	r.nextID++
	r.nextSeq++
	comment.ID = r.nextID
	comment.Seq = r.nextSeq
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = r.now
	}
	r.comments[comment.ID] = comment
	return nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, id uint) (*models.Comment, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, models.NewNotFoundError("Comment", id)
	}
	return comment, nil
}

func (r *fakeCommentRepo) ListByPost(_ context.Context, postID uint, _ uint) ([]*models.Comment, error) {
	var out []*models.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Seq < out[j].Seq
	})
	return out, nil
}

func (r *fakeCommentRepo) DeleteSubtree(_ context.Context, rootID uint) error {
	all := make([]*models.Comment, 0, len(r.comments))
	for _, c := range r.comments {
		all = append(all, c)
	}
	for _, id := range newCommentForest(all).subtreeIDs(rootID) {
		delete(r.comments, id)
		for k := range r.likes {
			if k.targetID == id {
				delete(r.likes, k)
			}
		}
	}
	return nil
}

func (r *fakeCommentRepo) IsLiked(_ context.Context, userID, commentID uint) (bool, error) {
	return r.likes[likeKey{userID, commentID}], nil
}

func (r *fakeCommentRepo) Like(_ context.Context, userID, commentID uint) error {
	r.likes[likeKey{userID, commentID}] = true
	return nil
}

func (r *fakeCommentRepo) Unlike(_ context.Context, userID, commentID uint) error {
	delete(r.likes, likeKey{userID, commentID})
	return nil
}

func (r *fakeCommentRepo) CountLikes(_ context.Context, commentID uint) (int64, error) {
	var n int64
	for key := range r.likes {
		if key.targetID == commentID {
			n++
		}
	}
	return n, nil
}

type fakeTagRepo struct {
	tags   map[uint]*models.Tag
	nextID uint
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{tags: make(map[uint]*models.Tag)}
}

func (r *fakeTagRepo) Create(_ context.Context, tag *models.Tag) error {
	for _, existing := range r.tags {
		if existing.Name == tag.Name {
			return models.NewDuplicateError("A tag with this name already exists")
		}
	}
	r.nextID++
	tag.ID = r.nextID
	r.tags[tag.ID] = tag
	return nil
}

func (r *fakeTagRepo) GetByID(_ context.Context, id uint) (*models.Tag, error) {
	tag, ok := r.tags[id]
	if !ok {
		return nil, models.NewNotFoundError("Tag", id)
	}
	return tag, nil
}

func (r *fakeTagRepo) GetBySlug(_ context.Context, s string) (*models.Tag, error) {
	for _, tag := range r.tags {
		if tag.Slug == s {
			return tag, nil
		}
	}
	return nil, models.NewNotFoundError("Tag", 0)
}

func (r *fakeTagRepo) GetByIDs(_ context.Context, ids []uint) ([]models.Tag, error) {
	var out []models.Tag
	for _, id := range ids {
		if tag, ok := r.tags[id]; ok {
			out = append(out, *tag)
		}
	}
	return out, nil
}

func (r *fakeTagRepo) List(_ context.Context) ([]models.Tag, error) {
	var out []models.Tag
	for _, tag := range r.tags {
		out = append(out, *tag)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeTagRepo) Delete(_ context.Context, id uint) error {
	delete(r.tags, id)
	return nil
}

type fakeReportRepo struct {
	reports map[uint]*models.Report
	nextID  uint
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[uint]*models.Report)}
}

func (r *fakeReportRepo) Create(_ context.Context, report *models.Report) error {
	for _, existing := range r.reports {
		if existing.PostID == report.PostID && existing.ReporterID == report.ReporterID {
			return models.NewDuplicateError("You have already reported this post")
		}
	}
	r.nextID++
	report.ID = r.nextID
	r.reports[report.ID] = report
	return nil
}

func (r *fakeReportRepo) GetByID(_ context.Context, id uint) (*models.Report, error) {
	report, ok := r.reports[id]
	if !ok {
		return nil, models.NewNotFoundError("Report", id)
	}
	return report, nil
}

func (r *fakeReportRepo) Exists(_ context.Context, postID, reporterID uint) (bool, error) {
	for _, report := range r.reports {
		if report.PostID == postID && report.ReporterID == reporterID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReportRepo) Update(_ context.Context, report *models.Report) error {
	r.reports[report.ID] = report
	return nil
}

func (r *fakeReportRepo) ListByClub(_ context.Context, _ uint, resolved *bool) ([]models.Report, error) {
	var out []models.Report
	for _, report := range r.reports {
		if resolved != nil && report.IsResolved != *resolved {
			continue
		}
		out = append(out, *report)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// captureSink records emitted events for assertions.
type captureSink struct {
	events []models.Notification
}

func (s *captureSink) Emit(_ context.Context, events []models.Notification) {
	s.events = append(s.events, events...)
}

func (s *captureSink) reset() {
	s.events = nil
}
