package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"
	"testing"

	lunchcommands "github.com/lunchpick/lunchpick/internal/modules/lunch/commands"
	lunchdomain "github.com/lunchpick/lunchpick/internal/modules/lunch/domain"
	userdomain "github.com/lunchpick/lunchpick/internal/modules/user/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func createSession(t *testing.T, creator userdomain.User) uuid.UUID {
	t.Helper()

	command := lunchcommands.CreateSessionCommand{CreatorID: creator.ID}

	payload, err := json.Marshal(command)
	require.NoError(t, err)

	resp, err := fixture.client.Post(
		fmt.Sprintf("%s%s", fixture.baseURL, "/sessions"),
		"application/json",
		bytes.NewReader(payload),
	)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	location := resp.Header.Get("Location")
	require.NotEmpty(t, location)

	sessionID, err := uuid.Parse(path.Base(location))
	require.NoError(t, err)
	return sessionID
}

func getSession(t *testing.T, sessionID uuid.UUID) lunchdomain.Session {
	t.Helper()

	resp, err := fixture.client.Get(
		fmt.Sprintf("%s/sessions/%s", fixture.baseURL, sessionID),
	)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var session lunchdomain.Session
	require.NoError(t, json.Unmarshal(body, &session))
	return session
}

func inviteUser(t *testing.T, sessionID uuid.UUID, inviter, invitee userdomain.User) *http.Response {
	t.Helper()

	command := lunchcommands.InviteUserCommand{
		InviterID: inviter.ID,
		InviteeID: invitee.ID,
	}

	payload, err := json.Marshal(command)
	require.NoError(t, err)

	resp, err := fixture.client.Post(
		fmt.Sprintf("%s/sessions/%s/invitations", fixture.baseURL, sessionID),
		"application/json",
		bytes.NewReader(payload),
	)
	require.NoError(t, err)
	return resp
}

func proposeRestaurant(t *testing.T, sessionID uuid.UUID, proposer userdomain.User, name string) *http.Response {
	t.Helper()

	command := lunchcommands.ProposeRestaurantCommand{
		UserID:         proposer.ID,
		RestaurantName: name,
	}

	payload, err := json.Marshal(command)
	require.NoError(t, err)

	resp, err := fixture.client.Post(
		fmt.Sprintf("%s/sessions/%s/restaurants", fixture.baseURL, sessionID),
		"application/json",
		bytes.NewReader(payload),
	)
	require.NoError(t, err)
	return resp
}

func endSession(t *testing.T, sessionID uuid.UUID, requester userdomain.User) *http.Response {
	t.Helper()

	command := lunchcommands.EndSessionCommand{RequesterID: requester.ID}

	payload, err := json.Marshal(command)
	require.NoError(t, err)

	req, err := http.NewRequest(
		http.MethodPut,
		fmt.Sprintf("%s/sessions/%s/actions/end", fixture.baseURL, sessionID),
		bytes.NewReader(payload),
	)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := fixture.client.Do(req)
	require.NoError(t, err)
	return resp
}

func Test_CreateSession_Returns_Location_Of_New_Session(t *testing.T) {
	requireInfrastructure(t)

	// Arrange
	creator := registerUser(t, uuid.New().String())

	// Act
	sessionID := createSession(t, creator)

	// Assert
	session := getSession(t, sessionID)
	require.True(t, session.Active)
	require.Equal(t, creator.ID, session.Creator.ID)
	require.Len(t, session.Participants, 1)
}

func Test_CreateSession_Returns_404_For_Unknown_Creator(t *testing.T) {
	requireInfrastructure(t)

	// Arrange
	command := lunchcommands.CreateSessionCommand{CreatorID: uuid.New()}

	payload, err := json.Marshal(command)
	require.NoError(t, err)

	// Act
	resp, err := fixture.client.Post(
		fmt.Sprintf("%s%s", fixture.baseURL, "/sessions"),
		"application/json",
		bytes.NewReader(payload),
	)

	// Assert
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func Test_Full_Lunch_Round_Over_HTTP(t *testing.T) {
	requireInfrastructure(t)

	// Arrange
	creator := registerUser(t, uuid.New().String())
	participant := registerUser(t, uuid.New().String())
	sessionID := createSession(t, creator)

	restaurantName := fmt.Sprintf("restaurant-%s", uuid.New())

	// Act
	inviteResp := inviteUser(t, sessionID, creator, participant)
	defer inviteResp.Body.Close()
	require.Equal(t, http.StatusOK, inviteResp.StatusCode)

	firstProposal := proposeRestaurant(t, sessionID, participant, restaurantName)
	defer firstProposal.Body.Close()
	require.Equal(t, http.StatusOK, firstProposal.StatusCode)

	secondProposal := proposeRestaurant(t, sessionID, creator, restaurantName)
	defer secondProposal.Body.Close()
	require.Equal(t, http.StatusOK, secondProposal.StatusCode)

	session := getSession(t, sessionID)
	require.Len(t, session.Restaurants, 1)

	endResp := endSession(t, sessionID, creator)
	defer endResp.Body.Close()

	// Assert
	require.Equal(t, http.StatusOK, endResp.StatusCode)

	body, err := io.ReadAll(endResp.Body)
	require.NoError(t, err)

	var response lunchcommands.EndSessionResponse
	require.NoError(t, json.Unmarshal(body, &response))
	require.Equal(t, restaurantName, response.PickedRestaurant)

	ended := getSession(t, sessionID)
	require.False(t, ended.Active)
	require.NotNil(t, ended.Picked)
	require.Equal(t, restaurantName, ended.Picked.Name)
}

func Test_InviteUser_Returns_403_For_Non_Creator(t *testing.T) {
	requireInfrastructure(t)

	// Arrange
	creator := registerUser(t, uuid.New().String())
	participant := registerUser(t, uuid.New().String())
	outsider := registerUser(t, uuid.New().String())
	sessionID := createSession(t, creator)

	inviteResp := inviteUser(t, sessionID, creator, participant)
	defer inviteResp.Body.Close()
	require.Equal(t, http.StatusOK, inviteResp.StatusCode)

	// Act
	resp := inviteUser(t, sessionID, participant, outsider)
	defer resp.Body.Close()

	// Assert
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func Test_ProposeRestaurant_Returns_403_For_Non_Participant(t *testing.T) {
	requireInfrastructure(t)

	// Arrange
	creator := registerUser(t, uuid.New().String())
	outsider := registerUser(t, uuid.New().String())
	sessionID := createSession(t, creator)

	// Act
	resp := proposeRestaurant(t, sessionID, outsider, fmt.Sprintf("restaurant-%s", uuid.New()))
	defer resp.Body.Close()

	// Assert
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func Test_ProposeRestaurant_Returns_409_After_Session_Ended(t *testing.T) {
	requireInfrastructure(t)

	// Arrange
	creator := registerUser(t, uuid.New().String())
	sessionID := createSession(t, creator)

	endResp := endSession(t, sessionID, creator)
	defer endResp.Body.Close()
	require.Equal(t, http.StatusOK, endResp.StatusCode)

	// Act
	resp := proposeRestaurant(t, sessionID, creator, fmt.Sprintf("restaurant-%s", uuid.New()))
	defer resp.Body.Close()

	// Assert
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func Test_DeleteSession_Removes_Ended_Session(t *testing.T) {
	requireInfrastructure(t)

	// Arrange
	creator := registerUser(t, uuid.New().String())
	sessionID := createSession(t, creator)

	endResp := endSession(t, sessionID, creator)
	defer endResp.Body.Close()
	require.Equal(t, http.StatusOK, endResp.StatusCode)

	command := lunchcommands.DeleteSessionCommand{RequesterID: creator.ID}
	payload, err := json.Marshal(command)
	require.NoError(t, err)

	req, err := http.NewRequest(
		http.MethodDelete,
		fmt.Sprintf("%s/sessions/%s", fixture.baseURL, sessionID),
		bytes.NewReader(payload),
	)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp, err := fixture.client.Do(req)

	// Assert
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	getResp, err := fixture.client.Get(fmt.Sprintf("%s/sessions/%s", fixture.baseURL, sessionID))
	require.NoError(t, err)
	defer getResp.Body.Close()

	require.Equal(t, http.StatusNotFound, getResp.StatusCode)
}
