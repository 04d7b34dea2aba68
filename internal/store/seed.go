package store

// SeedSQL fills a fresh template with the static reference dataset. The
// real dataset is produced offline from the community spreadsheet; this
// embedded copy only needs to agree with it on shape, since the template
// file can always be replaced wholesale by a regenerated one.
const SeedSQL = `
INSERT INTO MetaData (Key, Value) VALUES
    ("Version", "1"),
    ("GeneratedTime", datetime());

INSERT INTO Planets (Name) VALUES
    ("Pandora"),
    ("Promethea");

INSERT INTO Maps (Name, WorldName) VALUES
    ("Covenant Pass", "Prologue_P"),
    ("Ascension Bluff", "Sacrifice_P"),
    ("Meridian Metroplex", "City_P"),
    ("Any Map", NULL);

INSERT INTO Items (Name, Description, Points, Balance) VALUES
    ("Kingslayer",
     "Collectable from: Throne Keeper (Ascension Bluff)",
     1,
     "/Game/Gear/Weapons/Pistols/Balance/Balance_PS_Kingslayer.Balance_PS_Kingslayer"),
    ("Duskwalker",
     "Collectable from: Warden of the Bluff (Ascension Bluff)",
     2,
     "/Game/Gear/Weapons/Shotguns/Balance/Balance_SG_Duskwalker.Balance_SG_Duskwalker"),
    ("Emberwing",
     "Collectable from: Skyfire Roost (Meridian Metroplex)",
     3,
     "/Game/Gear/Weapons/SMGs/Balance/Balance_SM_Emberwing.Balance_SM_Emberwing"),
    ("Gravekeeper's Idol",
     "Collectable from: world drops",
     1,
     "/Game/PatchDLC/Raid1/Gear/Artifacts/Gravekeeper/InvBalD_Artifact_Gravekeeper.InvBalD_Artifact_Gravekeeper"),
    ("Stormcaller's Idol",
     "Collectable from: world drops",
     1,
     "/Game/PatchDLC/Raid1/Gear/Artifacts/Stormcaller/InvBalD_Artifact_Stormcaller.InvBalD_Artifact_Stormcaller"),
    ("Hollow Crown",
     "Collectable from: First Vault Guardian (Covenant Pass)",
     5,
     "/Game/Gear/Weapons/Snipers/Balance/Balance_SR_HollowCrown.Balance_SR_HollowCrown");

INSERT INTO Drops (ItemBalance, EnemyClass, ExtraItemPool) VALUES
    ("/Game/Gear/Weapons/Pistols/Balance/Balance_PS_Kingslayer.Balance_PS_Kingslayer",
     "/Game/Enemies/ThroneKeeper/BPChar_ThroneKeeper.BPChar_ThroneKeeper_C",
     NULL),
    ("/Game/Gear/Weapons/Shotguns/Balance/Balance_SG_Duskwalker.Balance_SG_Duskwalker",
     "/Game/Enemies/Warden/BPChar_Warden.BPChar_Warden_C",
     NULL),
    ("/Game/Gear/Weapons/SMGs/Balance/Balance_SM_Emberwing.Balance_SM_Emberwing",
     "/Game/Enemies/SkyfireRoost/BPChar_SkyfireRoost.BPChar_SkyfireRoost_C",
     NULL),
    ("/Game/Gear/Weapons/Snipers/Balance/Balance_SR_HollowCrown.Balance_SR_HollowCrown",
     "/Game/Enemies/VaultGuardian/BPChar_VaultGuardian.BPChar_VaultGuardian_C",
     "/Game/GameData/Loot/ItemPools/ItemPool_VaultGuardian_Raid.ItemPool_VaultGuardian_Raid"),
    ("/Game/PatchDLC/Raid1/Gear/Artifacts/Gravekeeper/InvBalD_Artifact_Gravekeeper.InvBalD_Artifact_Gravekeeper",
     NULL,
     NULL),
    ("/Game/PatchDLC/Raid1/Gear/Artifacts/Stormcaller/InvBalD_Artifact_Stormcaller.InvBalD_Artifact_Stormcaller",
     NULL,
     NULL);

INSERT INTO ExpandableBalances (RootBalance, Part, ExpandedBalance) VALUES
    ("/Game/Gear/Artifacts/_Design/BalanceDefs/InvBalD_Artifact_05_Legendary.InvBalD_Artifact_05_Legendary",
     "/Game/Gear/Artifacts/_Design/PartSets/Abilities/Gravekeeper/Artifact_Part_Ability_Gravekeeper.Artifact_Part_Ability_Gravekeeper",
     "/Game/PatchDLC/Raid1/Gear/Artifacts/Gravekeeper/InvBalD_Artifact_Gravekeeper.InvBalD_Artifact_Gravekeeper"),
    ("/Game/Gear/Artifacts/_Design/BalanceDefs/InvBalD_Artifact_05_Legendary.InvBalD_Artifact_05_Legendary",
     "/Game/Gear/Artifacts/_Design/PartSets/Abilities/Stormcaller/Artifact_Part_Ability_Stormcaller.Artifact_Part_Ability_Stormcaller",
     "/Game/PatchDLC/Raid1/Gear/Artifacts/Stormcaller/InvBalD_Artifact_Stormcaller.InvBalD_Artifact_Stormcaller");

INSERT INTO ItemLocations (PlanetID, PlanetName, MapID, MapName, WorldName, ItemID)
SELECT p.ID, p.Name, m.ID, m.Name, m.WorldName, i.ID
FROM Planets as p, Maps as m, Items as i
WHERE (p.Name, m.Name, i.Name) IN (
    VALUES
        ("Pandora", "Covenant Pass", "Hollow Crown"),
        ("Pandora", "Ascension Bluff", "Kingslayer"),
        ("Pandora", "Ascension Bluff", "Duskwalker"),
        ("Promethea", "Meridian Metroplex", "Emberwing"),
        ("Pandora", "Any Map", "Gravekeeper's Idol"),
        ("Pandora", "Any Map", "Stormcaller's Idol")
);

INSERT INTO OptionsList (PlanetID, PlanetName, MapID, MapName) VALUES
    ((SELECT ID FROM Planets WHERE Name = "Pandora"), "Pandora", NULL, NULL),
    (NULL, NULL, (SELECT ID FROM Maps WHERE Name = "Meridian Metroplex"), "Meridian Metroplex");

INSERT INTO MissionTokens (MissionClass, InitialTokens, SubsequentTokens) VALUES
    ("/Game/Missions/Plot/Mission_Ep23_TyreenFinalBoss.Mission_Ep23_TyreenFinalBoss_C", 2, 20),
    ("/Game/PatchDLC/Dandelion/Missions/Plot/Mission_DLC1_Ep07_TheHeist.Mission_DLC1_Ep07_TheHeist_C", 1, 7),
    ("/Game/PatchDLC/Hibiscus/Missions/Plot/EP06_DLC2.EP06_DLC2_C", 1, 7),
    ("/Game/PatchDLC/Geranium/Missions/Plot/Mission_Ep05_Crater.Mission_Ep05_Crater_C", 1, 5),
    ("/Game/PatchDLC/Alisma/Missions/Plot/ALI_EP05.ALI_EP05_C", 1, 5),
    ("/Game/PatchDLC/Ixora2/Missions/Plot/Mission_Ixora2_Plot05.Mission_Ixora2_Plot05_C", 1, 3);
`
